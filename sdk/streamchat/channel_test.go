package streamchat

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/tidwall/gjson"
)

func TestChannelURLRequiresID(t *testing.T) {
	client, _ := newTestServer(t, http.StatusOK, `{}`, nil)
	ch := client.Channel("messaging", "", nil)

	var usageErr *UsageError
	if _, err := ch.SendMessage(context.Background(), map[string]any{"text": "hi"}, "amy", nil); !errors.As(err, &usageErr) {
		t.Fatalf("SendMessage(no id) error = %v, want *UsageError", err)
	}
	if _, err := ch.Delete(context.Background()); !errors.As(err, &usageErr) {
		t.Fatalf("Delete(no id) error = %v, want *UsageError", err)
	}
}

func TestChannelSendMessageInjectsUser(t *testing.T) {
	client, captured := newTestServer(t, http.StatusCreated, `{"message": {"id": "m1"}}`, nil)
	ch := client.Channel("messaging", "general", nil)

	resp, err := ch.SendMessage(context.Background(), map[string]any{"text": "hi"}, "amy", nil)
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if captured.path != "/channels/messaging/general/message" {
		t.Fatalf("path = %q", captured.path)
	}
	if got := gjson.GetBytes(captured.body, "message.user.id").String(); got != "amy" {
		t.Fatalf("message.user.id = %q, want %q", got, "amy")
	}
	if got := gjson.GetBytes(captured.body, "message.text").String(); got != "hi" {
		t.Fatalf("message.text = %q, want %q", got, "hi")
	}
	if got := resp.Path("message.id").String(); got != "m1" {
		t.Fatalf("message.id = %q, want %q", got, "m1")
	}
}

func TestChannelSendEventAndReaction(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{}`, nil)
	ch := client.Channel("messaging", "general", nil)
	ctx := context.Background()

	if _, err := ch.SendEvent(ctx, map[string]any{"type": "typing.start"}, "amy"); err != nil {
		t.Fatalf("SendEvent() error = %v", err)
	}
	if captured.path != "/channels/messaging/general/event" {
		t.Fatalf("event path = %q", captured.path)
	}
	if got := gjson.GetBytes(captured.body, "event.user.id").String(); got != "amy" {
		t.Fatalf("event.user.id = %q, want %q", got, "amy")
	}

	if _, err := ch.SendReaction(ctx, "m1", map[string]any{"type": "love"}, "amy"); err != nil {
		t.Fatalf("SendReaction() error = %v", err)
	}
	if captured.path != "/messages/m1/reaction" {
		t.Fatalf("reaction path = %q", captured.path)
	}
	if got := gjson.GetBytes(captured.body, "reaction.user.id").String(); got != "amy" {
		t.Fatalf("reaction.user.id = %q, want %q", got, "amy")
	}

	if _, err := ch.DeleteReaction(ctx, "m1", "love", "amy"); err != nil {
		t.Fatalf("DeleteReaction() error = %v", err)
	}
	if captured.path != "/messages/m1/reaction/love" {
		t.Fatalf("delete reaction path = %q", captured.path)
	}
	if got := captured.query.Get("user_id"); got != "amy" {
		t.Fatalf("user_id = %q, want %q", got, "amy")
	}
}

func TestChannelCreateAdoptsID(t *testing.T) {
	client, captured := newTestServer(t, http.StatusCreated, `{"channel": {"id": "amy-ben"}}`, nil)
	ch := client.Channel("messaging", "", map[string]any{"members": []string{"amy", "ben"}})

	if _, err := ch.Create(context.Background(), "amy"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if captured.path != "/channels/messaging/query" {
		t.Fatalf("path = %q, want %q", captured.path, "/channels/messaging/query")
	}
	if got := gjson.GetBytes(captured.body, "data.created_by.id").String(); got != "amy" {
		t.Fatalf("data.created_by.id = %q, want %q", got, "amy")
	}
	if gjson.GetBytes(captured.body, "watch").Bool() {
		t.Fatal("watch = true, want false on create")
	}
	if ch.ID != "amy-ben" {
		t.Fatalf("ch.ID = %q, want %q", ch.ID, "amy-ben")
	}

	// Subsequent calls use the adopted id.
	if _, err := ch.Hide(context.Background(), "amy"); err != nil {
		t.Fatalf("Hide() error = %v", err)
	}
	if captured.path != "/channels/messaging/amy-ben/hide" {
		t.Fatalf("path = %q", captured.path)
	}
}

func TestChannelMembership(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{}`, nil)
	ch := client.Channel("messaging", "general", nil)
	ctx := context.Background()

	if _, err := ch.AddMembers(ctx, []string{"amy"}, map[string]any{"hide_history": true}); err != nil {
		t.Fatalf("AddMembers() error = %v", err)
	}
	if got := gjson.GetBytes(captured.body, "add_members.0").String(); got != "amy" {
		t.Fatalf("add_members.0 = %q", got)
	}
	if !gjson.GetBytes(captured.body, "hide_history").Bool() {
		t.Fatal("hide_history = false, want true")
	}

	if _, err := ch.RemoveMembers(ctx, []string{"amy"}, nil); err != nil {
		t.Fatalf("RemoveMembers() error = %v", err)
	}
	if got := gjson.GetBytes(captured.body, "remove_members.0").String(); got != "amy" {
		t.Fatalf("remove_members.0 = %q", got)
	}

	if _, err := ch.InviteMembers(ctx, []string{"ben"}, nil); err != nil {
		t.Fatalf("InviteMembers() error = %v", err)
	}
	if got := gjson.GetBytes(captured.body, "invites.0").String(); got != "ben" {
		t.Fatalf("invites.0 = %q", got)
	}

	if _, err := ch.AddModerators(ctx, []string{"amy"}); err != nil {
		t.Fatalf("AddModerators() error = %v", err)
	}
	if got := gjson.GetBytes(captured.body, "add_moderators.0").String(); got != "amy" {
		t.Fatalf("add_moderators.0 = %q", got)
	}

	if _, err := ch.AcceptInvite(ctx, "ben", nil); err != nil {
		t.Fatalf("AcceptInvite() error = %v", err)
	}
	if !gjson.GetBytes(captured.body, "accept_invite").Bool() {
		t.Fatal("accept_invite = false, want true")
	}
	if got := gjson.GetBytes(captured.body, "user_id").String(); got != "ben" {
		t.Fatalf("user_id = %q, want %q", got, "ben")
	}
}

func TestChannelBanUserScopesToChannel(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{}`, nil)
	ch := client.Channel("messaging", "general", nil)

	if _, err := ch.BanUser(context.Background(), "troll", map[string]any{"timeout": 3600}); err != nil {
		t.Fatalf("BanUser() error = %v", err)
	}
	if captured.path != "/moderation/ban" {
		t.Fatalf("path = %q, want %q", captured.path, "/moderation/ban")
	}
	if got := gjson.GetBytes(captured.body, "target_user_id").String(); got != "troll" {
		t.Fatalf("target_user_id = %q", got)
	}
	if got := gjson.GetBytes(captured.body, "type").String(); got != "messaging" {
		t.Fatalf("type = %q, want %q", got, "messaging")
	}
	if got := gjson.GetBytes(captured.body, "id").String(); got != "general" {
		t.Fatalf("id = %q, want %q", got, "general")
	}

	if _, err := ch.UnbanUser(context.Background(), "troll"); err != nil {
		t.Fatalf("UnbanUser() error = %v", err)
	}
	if captured.method != http.MethodDelete {
		t.Fatalf("method = %q, want DELETE", captured.method)
	}
	if got := captured.query.Get("type"); got != "messaging" {
		t.Fatalf("type = %q, want %q", got, "messaging")
	}
}

func TestChannelQueryMembers(t *testing.T) {
	client, captured := newTestServer(t, http.StatusOK, `{}`, nil)
	ch := client.Channel("messaging", "general", nil)

	_, err := ch.QueryMembers(context.Background(), map[string]any{"banned": true}, map[string]any{"created_at": -1}, nil)
	if err != nil {
		t.Fatalf("QueryMembers() error = %v", err)
	}
	payload := captured.query.Get("payload")
	if got := gjson.Get(payload, "type").String(); got != "messaging" {
		t.Fatalf("type = %q", got)
	}
	if got := gjson.Get(payload, "id").String(); got != "general" {
		t.Fatalf("id = %q", got)
	}
	if !gjson.Get(payload, "filter_conditions.banned").Bool() {
		t.Fatal("filter_conditions.banned = false, want true")
	}
}
