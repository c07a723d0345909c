package streamchat

import (
	"context"
	"encoding/json"

	"github.com/tidwall/sjson"
)

// Channel binds a channel type and id to a client. Obtain one with
// Client.Channel; the id may be empty until Create resolves one server-side.
type Channel struct {
	client *Client

	Type       string
	ID         string
	CustomData map[string]any
}

// Channel returns a handle on a channel of the given type. data is the
// custom channel state sent on Create; it may be nil.
func (c *Client) Channel(channelType, channelID string, data map[string]any) *Channel {
	return &Channel{client: c, Type: channelType, ID: channelID, CustomData: data}
}

func (ch *Channel) url() (string, error) {
	if ch.ID == "" {
		return "", &UsageError{Op: "channel url", Reason: "channel does not have an id"}
	}
	return "channels/" + ch.Type + "/" + ch.ID, nil
}

// addUserID marshals payload and injects {"user": {"id": userID}} next to it,
// the shape the API expects for server-side sends on behalf of a user.
func addUserID(payload map[string]any, userID string) (json.RawMessage, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	raw, err = sjson.SetBytes(raw, "user.id", userID)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// SendMessage posts a message to the channel on behalf of userID.
func (ch *Channel) SendMessage(ctx context.Context, message map[string]any, userID string, options map[string]any) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	payload := copyOptions(options)
	msg, err := addUserID(map[string]any{}, userID)
	if err != nil {
		return nil, err
	}
	for k, v := range message {
		if msg, err = sjson.SetBytes(msg, k, v); err != nil {
			return nil, err
		}
	}
	payload["message"] = json.RawMessage(msg)
	return ch.client.Post(ctx, base+"/message", nil, payload)
}

// SendEvent delivers an event on the channel on behalf of userID.
func (ch *Channel) SendEvent(ctx context.Context, event map[string]any, userID string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	raw, err := addUserID(event, userID)
	if err != nil {
		return nil, err
	}
	return ch.client.Post(ctx, base+"/event", nil, map[string]any{"event": json.RawMessage(raw)})
}

// SendReaction attaches a reaction to a message on behalf of userID.
func (ch *Channel) SendReaction(ctx context.Context, messageID string, reaction map[string]any, userID string) (*Response, error) {
	if _, err := ch.url(); err != nil {
		return nil, err
	}
	raw, err := addUserID(reaction, userID)
	if err != nil {
		return nil, err
	}
	return ch.client.Post(ctx, "messages/"+messageID+"/reaction", nil, map[string]any{"reaction": json.RawMessage(raw)})
}

// DeleteReaction removes userID's reaction of the given type from a message.
func (ch *Channel) DeleteReaction(ctx context.Context, messageID, reactionType, userID string) (*Response, error) {
	if _, err := ch.url(); err != nil {
		return nil, err
	}
	return ch.client.Delete(ctx, "messages/"+messageID+"/reaction/"+reactionType, map[string]any{"user_id": userID})
}

// Create materializes the channel server-side with userID as creator. The
// channel id is filled in from the response when it was left empty.
func (ch *Channel) Create(ctx context.Context, userID string) (*Response, error) {
	if ch.CustomData == nil {
		ch.CustomData = map[string]any{}
	}
	ch.CustomData["created_by"] = map[string]any{"id": userID}
	return ch.Query(ctx, map[string]any{"watch": false, "state": false, "presence": false})
}

// Query fetches channel state. The id is adopted from the response for
// channels created without one.
func (ch *Channel) Query(ctx context.Context, options map[string]any) (*Response, error) {
	path := "channels/" + ch.Type
	if ch.ID != "" {
		path += "/" + ch.ID
	}
	payload := map[string]any{"state": true}
	for k, v := range options {
		payload[k] = v
	}
	payload["data"] = ch.CustomData
	resp, err := ch.client.Post(ctx, path+"/query", nil, payload)
	if err != nil {
		return nil, err
	}
	if ch.ID == "" {
		ch.ID = resp.Path("channel.id").String()
	}
	return resp, nil
}

// QueryMembers lists channel members matching the filter.
func (ch *Channel) QueryMembers(ctx context.Context, filter map[string]any, sortSpec any, options map[string]any) (*Response, error) {
	params := copyOptions(options)
	params["type"] = ch.Type
	if ch.ID != "" {
		params["id"] = ch.ID
	} else if ch.CustomData != nil {
		if members, ok := ch.CustomData["members"]; ok {
			params["members"] = members
		}
	}
	params["filter_conditions"] = filter
	params["sort"] = NormalizeSort(sortSpec)
	return ch.client.Get(ctx, "members", map[string]any{"payload": params})
}

// Update replaces the channel's custom data, optionally attaching a system
// message describing the edit.
func (ch *Channel) Update(ctx context.Context, data map[string]any, message map[string]any) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	payload := map[string]any{"data": data}
	if message != nil {
		payload["message"] = message
	}
	return ch.client.Post(ctx, base, nil, payload)
}

// UpdatePartial applies a set/unset partial update to the channel data.
func (ch *Channel) UpdatePartial(ctx context.Context, set map[string]any, unset []string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.Patch(ctx, base, nil, map[string]any{"set": set, "unset": unset})
}

// Delete removes the channel.
func (ch *Channel) Delete(ctx context.Context) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.Delete(ctx, base, nil)
}

// Truncate removes the channel's messages while keeping the channel.
func (ch *Channel) Truncate(ctx context.Context, options map[string]any) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.Post(ctx, base+"/truncate", nil, options)
}

// AddMembers adds users to the channel.
func (ch *Channel) AddMembers(ctx context.Context, userIDs []string, options map[string]any) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	payload := copyOptions(options)
	payload["add_members"] = userIDs
	return ch.client.Post(ctx, base, nil, payload)
}

// RemoveMembers removes users from the channel.
func (ch *Channel) RemoveMembers(ctx context.Context, userIDs []string, options map[string]any) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	payload := copyOptions(options)
	payload["remove_members"] = userIDs
	return ch.client.Post(ctx, base, nil, payload)
}

// InviteMembers invites users to the channel.
func (ch *Channel) InviteMembers(ctx context.Context, userIDs []string, options map[string]any) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	payload := copyOptions(options)
	payload["invites"] = userIDs
	return ch.client.Post(ctx, base, nil, payload)
}

// AddModerators grants the moderator role to users on this channel.
func (ch *Channel) AddModerators(ctx context.Context, userIDs []string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.Post(ctx, base, nil, map[string]any{"add_moderators": userIDs})
}

// DemoteModerators removes the moderator role from users on this channel.
func (ch *Channel) DemoteModerators(ctx context.Context, userIDs []string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.Post(ctx, base, nil, map[string]any{"demote_moderators": userIDs})
}

// MarkRead marks the channel read for userID.
func (ch *Channel) MarkRead(ctx context.Context, userID string, options map[string]any) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	payload := copyOptions(options)
	payload["user"] = map[string]any{"id": userID}
	return ch.client.Post(ctx, base+"/read", nil, payload)
}

// GetReplies lists replies to a thread parent message.
func (ch *Channel) GetReplies(ctx context.Context, parentID string, options map[string]any) (*Response, error) {
	if _, err := ch.url(); err != nil {
		return nil, err
	}
	return ch.client.Get(ctx, "messages/"+parentID+"/replies", options)
}

// GetReactions lists reactions on a message.
func (ch *Channel) GetReactions(ctx context.Context, messageID string, options map[string]any) (*Response, error) {
	if _, err := ch.url(); err != nil {
		return nil, err
	}
	return ch.client.Get(ctx, "messages/"+messageID+"/reactions", options)
}

// BanUser bans a user from this channel.
func (ch *Channel) BanUser(ctx context.Context, targetID string, options map[string]any) (*Response, error) {
	if _, err := ch.url(); err != nil {
		return nil, err
	}
	params := copyOptions(options)
	params["type"] = ch.Type
	params["id"] = ch.ID
	return ch.client.BanUser(ctx, targetID, params)
}

// UnbanUser lifts a channel ban.
func (ch *Channel) UnbanUser(ctx context.Context, targetID string) (*Response, error) {
	if _, err := ch.url(); err != nil {
		return nil, err
	}
	return ch.client.UnbanUser(ctx, targetID, map[string]any{"type": ch.Type, "id": ch.ID})
}

// AcceptInvite accepts a pending channel invite for userID.
func (ch *Channel) AcceptInvite(ctx context.Context, userID string, options map[string]any) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	payload := copyOptions(options)
	payload["accept_invite"] = true
	payload["user_id"] = userID
	return ch.client.Post(ctx, base, nil, payload)
}

// RejectInvite rejects a pending channel invite for userID.
func (ch *Channel) RejectInvite(ctx context.Context, userID string, options map[string]any) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	payload := copyOptions(options)
	payload["reject_invite"] = true
	payload["user_id"] = userID
	return ch.client.Post(ctx, base, nil, payload)
}

// Hide removes the channel from userID's channel list until new activity.
func (ch *Channel) Hide(ctx context.Context, userID string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.Post(ctx, base+"/hide", nil, map[string]any{"user_id": userID})
}

// Show undoes Hide for userID.
func (ch *Channel) Show(ctx context.Context, userID string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.Post(ctx, base+"/show", nil, map[string]any{"user_id": userID})
}

// SendFile uploads an attachment to the channel. source is a local path or a
// remote URL.
func (ch *Channel) SendFile(ctx context.Context, source, name string, user map[string]any, contentType string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.SendFile(ctx, base+"/file", source, name, user, contentType)
}

// SendImage uploads an image to the channel.
func (ch *Channel) SendImage(ctx context.Context, source, name string, user map[string]any, contentType string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.SendFile(ctx, base+"/image", source, name, user, contentType)
}

// DeleteFile removes a previously uploaded attachment by its URL.
func (ch *Channel) DeleteFile(ctx context.Context, fileURL string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.Delete(ctx, base+"/file", map[string]any{"url": fileURL})
}

// DeleteImage removes a previously uploaded image by its URL.
func (ch *Channel) DeleteImage(ctx context.Context, imageURL string) (*Response, error) {
	base, err := ch.url()
	if err != nil {
		return nil, err
	}
	return ch.client.Delete(ctx, base+"/image", map[string]any{"url": imageURL})
}
