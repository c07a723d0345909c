package streamchat

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tidwall/sjson"
)

func copyOptions(options map[string]any) map[string]any {
	out := make(map[string]any, len(options)+4)
	for k, v := range options {
		out[k] = v
	}
	return out
}

// GetAppSettings fetches the application configuration.
func (c *Client) GetAppSettings(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "app", nil)
}

// UpdateAppSettings patches application level settings.
func (c *Client) UpdateAppSettings(ctx context.Context, settings map[string]any) (*Response, error) {
	return c.Patch(ctx, "app", nil, settings)
}

// UpsertUsers creates or updates users. Every user must carry an "id" field.
func (c *Client) UpsertUsers(ctx context.Context, users ...map[string]any) (*Response, error) {
	if len(users) == 0 {
		return nil, &UsageError{Op: "upsert users", Reason: "at least one user is required"}
	}
	byID := make(map[string]any, len(users))
	for _, user := range users {
		id, _ := user["id"].(string)
		if id == "" {
			return nil, &UsageError{Op: "upsert users", Reason: "every user must have an id"}
		}
		byID[id] = user
	}
	return c.Post(ctx, "users", nil, map[string]any{"users": byID})
}

// UpsertUser creates or updates a single user.
func (c *Client) UpsertUser(ctx context.Context, user map[string]any) (*Response, error) {
	return c.UpsertUsers(ctx, user)
}

// UpdateUsersPartial applies partial updates, each shaped as
// {"id": ..., "set": {...}, "unset": [...]}.
func (c *Client) UpdateUsersPartial(ctx context.Context, updates []map[string]any) (*Response, error) {
	return c.Patch(ctx, "users", nil, map[string]any{"users": updates})
}

// UpdateUserPartial applies a partial update to a single user.
func (c *Client) UpdateUserPartial(ctx context.Context, update map[string]any) (*Response, error) {
	return c.UpdateUsersPartial(ctx, []map[string]any{update})
}

// DeleteUser deletes one user.
func (c *Client) DeleteUser(ctx context.Context, userID string, options map[string]any) (*Response, error) {
	return c.Delete(ctx, "users/"+userID, options)
}

// DeleteUsers schedules an asynchronous bulk delete. deleteType is "hard" or
// "soft"; the response carries a task id to poll with GetTask.
func (c *Client) DeleteUsers(ctx context.Context, userIDs []string, deleteType string, options map[string]any) (*Response, error) {
	if len(userIDs) == 0 {
		return nil, &UsageError{Op: "delete users", Reason: "at least one user id is required"}
	}
	if deleteType == "" {
		return nil, &UsageError{Op: "delete users", Reason: "a delete type is required"}
	}
	data := copyOptions(options)
	data["user"] = deleteType
	data["user_ids"] = userIDs
	return c.Post(ctx, "users/delete", nil, data)
}

// RestoreUsers restores soft-deleted users.
func (c *Client) RestoreUsers(ctx context.Context, userIDs []string) (*Response, error) {
	return c.Post(ctx, "users/restore", nil, map[string]any{"user_ids": userIDs})
}

// DeactivateUser deactivates a user.
func (c *Client) DeactivateUser(ctx context.Context, userID string, options map[string]any) (*Response, error) {
	return c.Post(ctx, "users/"+userID+"/deactivate", nil, options)
}

// ReactivateUser reactivates a previously deactivated user.
func (c *Client) ReactivateUser(ctx context.Context, userID string, options map[string]any) (*Response, error) {
	return c.Post(ctx, "users/"+userID+"/reactivate", nil, options)
}

// ExportUser requests a data export for a user.
func (c *Client) ExportUser(ctx context.Context, userID string, options map[string]any) (*Response, error) {
	return c.Get(ctx, "users/"+userID+"/export", options)
}

// BanUser bans a user, optionally scoped to a channel via options.
func (c *Client) BanUser(ctx context.Context, targetID string, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["target_user_id"] = targetID
	return c.Post(ctx, "moderation/ban", nil, data)
}

// ShadowBan bans a user without revealing the ban to them.
func (c *Client) ShadowBan(ctx context.Context, targetID string, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["shadow"] = true
	return c.BanUser(ctx, targetID, data)
}

// UnbanUser lifts a ban.
func (c *Client) UnbanUser(ctx context.Context, targetID string, options map[string]any) (*Response, error) {
	params := copyOptions(options)
	params["target_user_id"] = targetID
	return c.Delete(ctx, "moderation/ban", params)
}

// RemoveShadowBan lifts a shadow ban.
func (c *Client) RemoveShadowBan(ctx context.Context, targetID string, options map[string]any) (*Response, error) {
	params := copyOptions(options)
	params["shadow"] = true
	return c.UnbanUser(ctx, targetID, params)
}

// QueryBannedUsers lists bans matching the given query conditions.
func (c *Client) QueryBannedUsers(ctx context.Context, query map[string]any) (*Response, error) {
	return c.Get(ctx, "query_banned_users", map[string]any{"payload": query})
}

// FlagMessage flags a message for moderation review.
func (c *Client) FlagMessage(ctx context.Context, targetID string, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["target_message_id"] = targetID
	return c.Post(ctx, "moderation/flag", nil, data)
}

// UnflagMessage removes a message flag.
func (c *Client) UnflagMessage(ctx context.Context, targetID string, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["target_message_id"] = targetID
	return c.Post(ctx, "moderation/unflag", nil, data)
}

// FlagUser flags a user for moderation review.
func (c *Client) FlagUser(ctx context.Context, targetID string, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["target_user_id"] = targetID
	return c.Post(ctx, "moderation/flag", nil, data)
}

// UnflagUser removes a user flag.
func (c *Client) UnflagUser(ctx context.Context, targetID string, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["target_user_id"] = targetID
	return c.Post(ctx, "moderation/unflag", nil, data)
}

// QueryMessageFlags lists message flags matching the filter.
func (c *Client) QueryMessageFlags(ctx context.Context, filter map[string]any, options map[string]any) (*Response, error) {
	params := copyOptions(options)
	params["filter_conditions"] = filter
	return c.Get(ctx, "moderation/flags/message", map[string]any{"payload": params})
}

// MuteUser mutes targetID on behalf of userID.
func (c *Client) MuteUser(ctx context.Context, targetID, userID string, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["target_id"] = targetID
	data["user_id"] = userID
	return c.Post(ctx, "moderation/mute", nil, data)
}

// MuteUsers mutes several users on behalf of userID.
func (c *Client) MuteUsers(ctx context.Context, targetIDs []string, userID string, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["target_ids"] = targetIDs
	data["user_id"] = userID
	return c.Post(ctx, "moderation/mute", nil, data)
}

// UnmuteUser removes a mute.
func (c *Client) UnmuteUser(ctx context.Context, targetID, userID string) (*Response, error) {
	return c.Post(ctx, "moderation/unmute", nil, map[string]any{"target_id": targetID, "user_id": userID})
}

// UnmuteUsers removes mutes for several users.
func (c *Client) UnmuteUsers(ctx context.Context, targetIDs []string, userID string) (*Response, error) {
	return c.Post(ctx, "moderation/unmute", nil, map[string]any{"target_ids": targetIDs, "user_id": userID})
}

// MarkAllRead marks every channel as read for a user.
func (c *Client) MarkAllRead(ctx context.Context, userID string) (*Response, error) {
	return c.Post(ctx, "channels/read", nil, map[string]any{"user": map[string]any{"id": userID}})
}

// RunMessageAction runs a server-side message action (e.g. a command).
func (c *Client) RunMessageAction(ctx context.Context, messageID string, data map[string]any) (*Response, error) {
	return c.Post(ctx, "messages/"+messageID+"/action", nil, data)
}

// TranslateMessage translates a message into the given language.
func (c *Client) TranslateMessage(ctx context.Context, messageID, language string) (*Response, error) {
	return c.Post(ctx, "messages/"+messageID+"/translate", nil, map[string]any{"language": language})
}

// UpdateMessage replaces a message. The message must carry its "id".
func (c *Client) UpdateMessage(ctx context.Context, message map[string]any) (*Response, error) {
	id, _ := message["id"].(string)
	if id == "" {
		return nil, &UsageError{Op: "update message", Reason: "message must have an id"}
	}
	return c.Post(ctx, "messages/"+id, nil, map[string]any{"message": message})
}

// UpdateMessagePartial applies a partial update ({"set": ..., "unset": ...})
// on behalf of userID.
func (c *Client) UpdateMessagePartial(ctx context.Context, messageID string, updates map[string]any, userID string, options map[string]any) (*Response, error) {
	if messageID == "" {
		return nil, &UsageError{Op: "update message partial", Reason: "message id is required"}
	}
	if userID == "" {
		return nil, &UsageError{Op: "update message partial", Reason: "user id is required"}
	}
	raw, err := json.Marshal(updates)
	if err != nil {
		return nil, err
	}
	raw, err = sjson.SetBytes(raw, "user.id", userID)
	if err != nil {
		return nil, err
	}
	for k, v := range options {
		if raw, err = sjson.SetBytes(raw, k, v); err != nil {
			return nil, err
		}
	}
	return c.Put(ctx, "messages/"+messageID, nil, json.RawMessage(raw))
}

// PinMessage pins a message on behalf of userID. expiration is an optional
// unix timestamp.
func (c *Client) PinMessage(ctx context.Context, messageID, userID string, expiration int64) (*Response, error) {
	set := map[string]any{"pinned": true}
	if expiration > 0 {
		set["pin_expires"] = expiration
	}
	return c.UpdateMessagePartial(ctx, messageID, map[string]any{"set": set}, userID, nil)
}

// UnpinMessage unpins a message on behalf of userID.
func (c *Client) UnpinMessage(ctx context.Context, messageID, userID string) (*Response, error) {
	return c.UpdateMessagePartial(ctx, messageID, map[string]any{"set": map[string]any{"pinned": false}}, userID, nil)
}

// DeleteMessage deletes a message.
func (c *Client) DeleteMessage(ctx context.Context, messageID string, options map[string]any) (*Response, error) {
	return c.Delete(ctx, "messages/"+messageID, options)
}

// GetMessage fetches a single message.
func (c *Client) GetMessage(ctx context.Context, messageID string) (*Response, error) {
	return c.Get(ctx, "messages/"+messageID, nil)
}

// QueryUsers lists users matching the filter. sortSpec accepts any shape
// NormalizeSort understands.
func (c *Client) QueryUsers(ctx context.Context, filter map[string]any, sortSpec any, options map[string]any) (*Response, error) {
	params := copyOptions(options)
	params["filter_conditions"] = filter
	params["sort"] = NormalizeSort(sortSpec)
	return c.Get(ctx, "users", map[string]any{"payload": params})
}

// QueryChannels lists channels matching the filter. State is included by
// default; watch and presence are server-side concepts and stay off.
func (c *Client) QueryChannels(ctx context.Context, filter map[string]any, sortSpec any, options map[string]any) (*Response, error) {
	params := map[string]any{"state": true, "watch": false, "presence": false}
	for k, v := range options {
		params[k] = v
	}
	params["filter_conditions"] = filter
	params["sort"] = NormalizeSort(sortSpec)
	return c.Post(ctx, "channels", nil, params)
}

// Search searches messages. query is either a search string or a message
// filter mapping. Offset pagination cannot be combined with sort or with the
// "next" cursor.
func (c *Client) Search(ctx context.Context, filter map[string]any, query any, sortSpec any, options map[string]any) (*Response, error) {
	sortFields := NormalizeSort(sortSpec)
	if _, hasOffset := options["offset"]; hasOffset {
		_, hasNext := options["next"]
		if len(sortFields) > 0 || hasNext {
			return nil, &UsageError{Op: "search", Reason: "cannot use offset with sort or next parameters"}
		}
	}
	params := copyOptions(options)
	switch q := query.(type) {
	case string:
		params["query"] = q
	case map[string]any:
		params["message_filter_conditions"] = q
	default:
		return nil, &UsageError{Op: "search", Reason: "query must be a string or a filter mapping"}
	}
	params["filter_conditions"] = filter
	if len(sortFields) > 0 {
		params["sort"] = sortFields
	}
	return c.Get(ctx, "search", map[string]any{"payload": params})
}

// QueryThreads lists threads matching the filter.
func (c *Client) QueryThreads(ctx context.Context, filter map[string]any, sortSpec any, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["filter"] = filter
	data["sort"] = NormalizeSort(sortSpec)
	return c.Post(ctx, "threads", nil, data)
}

// CreateChannelType registers a channel type. Commands default to ["all"].
func (c *Client) CreateChannelType(ctx context.Context, data map[string]any) (*Response, error) {
	body := copyOptions(data)
	if commands, ok := body["commands"].([]string); !ok || len(commands) == 0 {
		if commands, ok := body["commands"].([]any); !ok || len(commands) == 0 {
			body["commands"] = []string{"all"}
		}
	}
	return c.Post(ctx, "channeltypes", nil, body)
}

// GetChannelType fetches a channel type definition.
func (c *Client) GetChannelType(ctx context.Context, channelType string) (*Response, error) {
	return c.Get(ctx, "channeltypes/"+channelType, nil)
}

// ListChannelTypes lists all channel types.
func (c *Client) ListChannelTypes(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "channeltypes", nil)
}

// UpdateChannelType updates a channel type definition.
func (c *Client) UpdateChannelType(ctx context.Context, channelType string, settings map[string]any) (*Response, error) {
	return c.Put(ctx, "channeltypes/"+channelType, nil, settings)
}

// DeleteChannelType deletes a channel type.
func (c *Client) DeleteChannelType(ctx context.Context, channelType string) (*Response, error) {
	return c.Delete(ctx, "channeltypes/"+channelType, nil)
}

// DeleteChannels schedules an asynchronous delete of the given channel cids;
// the response carries a task id to poll with GetTask.
func (c *Client) DeleteChannels(ctx context.Context, cids []string, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["cids"] = cids
	return c.Post(ctx, "channels/delete", nil, data)
}

// ListCommands lists custom commands.
func (c *Client) ListCommands(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "commands", nil)
}

// CreateCommand registers a custom command.
func (c *Client) CreateCommand(ctx context.Context, data map[string]any) (*Response, error) {
	return c.Post(ctx, "commands", nil, data)
}

// GetCommand fetches a custom command.
func (c *Client) GetCommand(ctx context.Context, name string) (*Response, error) {
	return c.Get(ctx, "commands/"+name, nil)
}

// UpdateCommand updates a custom command.
func (c *Client) UpdateCommand(ctx context.Context, name string, settings map[string]any) (*Response, error) {
	return c.Put(ctx, "commands/"+name, nil, settings)
}

// DeleteCommand deletes a custom command.
func (c *Client) DeleteCommand(ctx context.Context, name string) (*Response, error) {
	return c.Delete(ctx, "commands/"+name, nil)
}

// AddDevice registers a push device for a user. pushProviderName is optional.
func (c *Client) AddDevice(ctx context.Context, deviceID, pushProvider, userID, pushProviderName string) (*Response, error) {
	data := map[string]any{
		"id":            deviceID,
		"push_provider": pushProvider,
		"user_id":       userID,
	}
	if pushProviderName != "" {
		data["push_provider_name"] = pushProviderName
	}
	return c.Post(ctx, "devices", nil, data)
}

// DeleteDevice removes a push device from a user.
func (c *Client) DeleteDevice(ctx context.Context, deviceID, userID string) (*Response, error) {
	return c.Delete(ctx, "devices", map[string]any{"id": deviceID, "user_id": userID})
}

// GetDevices lists a user's push devices.
func (c *Client) GetDevices(ctx context.Context, userID string) (*Response, error) {
	return c.Get(ctx, "devices", map[string]any{"user_id": userID})
}

// GetRateLimits returns quota and usage. With no toggles set, limits for all
// platforms and endpoints are returned.
func (c *Client) GetRateLimits(ctx context.Context, serverSide, android, ios, web bool, endpoints []string) (*Response, error) {
	params := map[string]any{}
	if serverSide {
		params["server_side"] = true
	}
	if android {
		params["android"] = true
	}
	if ios {
		params["ios"] = true
	}
	if web {
		params["web"] = true
	}
	if len(endpoints) > 0 {
		params["endpoints"] = strings.Join(endpoints, ",")
	}
	return c.Get(ctx, "rate_limits", params)
}

// CreateBlocklist creates a named list of blocked words.
func (c *Client) CreateBlocklist(ctx context.Context, name string, words []string) (*Response, error) {
	return c.Post(ctx, "blocklists", nil, map[string]any{"name": name, "words": words})
}

// ListBlocklists lists blocklists.
func (c *Client) ListBlocklists(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "blocklists", nil)
}

// GetBlocklist fetches a blocklist by name.
func (c *Client) GetBlocklist(ctx context.Context, name string) (*Response, error) {
	return c.Get(ctx, "blocklists/"+name, nil)
}

// UpdateBlocklist replaces the word list of a blocklist.
func (c *Client) UpdateBlocklist(ctx context.Context, name string, words []string) (*Response, error) {
	return c.Put(ctx, "blocklists/"+name, nil, map[string]any{"words": words})
}

// DeleteBlocklist deletes a blocklist by name.
func (c *Client) DeleteBlocklist(ctx context.Context, name string) (*Response, error) {
	return c.Delete(ctx, "blocklists/"+name, nil)
}

// CheckPush tests the app's push settings against a message.
func (c *Client) CheckPush(ctx context.Context, pushData map[string]any) (*Response, error) {
	return c.Post(ctx, "check_push", nil, pushData)
}

// CheckSQS validates SQS push settings. With empty arguments the app's
// current settings are checked.
func (c *Client) CheckSQS(ctx context.Context, sqsKey, sqsSecret, sqsURL string) (*Response, error) {
	return c.Post(ctx, "check_sqs", nil, map[string]any{
		"sqs_key":    sqsKey,
		"sqs_secret": sqsSecret,
		"sqs_url":    sqsURL,
	})
}

// SetGuestUser creates a guest user session.
func (c *Client) SetGuestUser(ctx context.Context, guestUser map[string]any) (*Response, error) {
	return c.Post(ctx, "guest", nil, map[string]any{"user": guestUser})
}

// GetPermission fetches a permission definition.
func (c *Client) GetPermission(ctx context.Context, id string) (*Response, error) {
	return c.Get(ctx, "permissions/"+id, nil)
}

// CreatePermission creates a custom permission.
func (c *Client) CreatePermission(ctx context.Context, permission map[string]any) (*Response, error) {
	return c.Post(ctx, "permissions", nil, permission)
}

// UpdatePermission updates a custom permission.
func (c *Client) UpdatePermission(ctx context.Context, id string, permission map[string]any) (*Response, error) {
	return c.Put(ctx, "permissions/"+id, nil, permission)
}

// DeletePermission deletes a custom permission.
func (c *Client) DeletePermission(ctx context.Context, id string) (*Response, error) {
	return c.Delete(ctx, "permissions/"+id, nil)
}

// ListPermissions lists the app's permissions.
func (c *Client) ListPermissions(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "permissions", nil)
}

// CreateRole creates a custom role.
func (c *Client) CreateRole(ctx context.Context, name string) (*Response, error) {
	return c.Post(ctx, "roles", nil, map[string]any{"name": name})
}

// DeleteRole deletes a custom role.
func (c *Client) DeleteRole(ctx context.Context, name string) (*Response, error) {
	return c.Delete(ctx, "roles/"+name, nil)
}

// ListRoles lists the app's roles.
func (c *Client) ListRoles(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "roles", nil)
}

// CreateSegment creates a user or channel segment.
func (c *Client) CreateSegment(ctx context.Context, segment map[string]any) (*Response, error) {
	return c.Post(ctx, "segments", nil, map[string]any{"segment": segment})
}

// GetSegment fetches a segment by id.
func (c *Client) GetSegment(ctx context.Context, segmentID string) (*Response, error) {
	return c.Get(ctx, "segments/"+segmentID, nil)
}

// QuerySegments lists segments. The "next" and "prev" cursors are mutually
// exclusive.
func (c *Client) QuerySegments(ctx context.Context, params map[string]any) (*Response, error) {
	if err := checkPager("query segments", params); err != nil {
		return nil, err
	}
	return c.Get(ctx, "segments", map[string]any{"payload": params})
}

// UpdateSegment updates a segment by id.
func (c *Client) UpdateSegment(ctx context.Context, segmentID string, data map[string]any) (*Response, error) {
	return c.Put(ctx, "segments/"+segmentID, nil, map[string]any{"segment": data})
}

// DeleteSegment deletes a segment by id.
func (c *Client) DeleteSegment(ctx context.Context, segmentID string) (*Response, error) {
	return c.Delete(ctx, "segments/"+segmentID, nil)
}

// SegmentTargetExists reports whether a target belongs to a segment.
func (c *Client) SegmentTargetExists(ctx context.Context, segmentID, targetID string) (*Response, error) {
	return c.Get(ctx, "segments/"+segmentID+"/target/"+targetID, nil)
}

// AddSegmentTargets adds targets to a segment.
func (c *Client) AddSegmentTargets(ctx context.Context, segmentID string, targetIDs []string) (*Response, error) {
	return c.Post(ctx, "segments/"+segmentID+"/addtargets", nil, map[string]any{"target_ids": targetIDs})
}

// DeleteSegmentTargets removes targets from a segment.
func (c *Client) DeleteSegmentTargets(ctx context.Context, segmentID string, targetIDs []string) (*Response, error) {
	return c.Post(ctx, "segments/"+segmentID+"/deletetargets", nil, map[string]any{"target_ids": targetIDs})
}

// CreateCampaign creates a campaign.
func (c *Client) CreateCampaign(ctx context.Context, campaign map[string]any) (*Response, error) {
	return c.Post(ctx, "campaigns", nil, map[string]any{"campaign": campaign})
}

// GetCampaign fetches a campaign by id.
func (c *Client) GetCampaign(ctx context.Context, campaignID string) (*Response, error) {
	return c.Get(ctx, "campaigns/"+campaignID, nil)
}

// QueryCampaigns lists campaigns. The "next" and "prev" cursors are mutually
// exclusive.
func (c *Client) QueryCampaigns(ctx context.Context, params map[string]any) (*Response, error) {
	if err := checkPager("query campaigns", params); err != nil {
		return nil, err
	}
	return c.Get(ctx, "campaigns", map[string]any{"payload": params})
}

// UpdateCampaign updates a campaign by id.
func (c *Client) UpdateCampaign(ctx context.Context, campaignID string, data map[string]any) (*Response, error) {
	return c.Put(ctx, "campaigns/"+campaignID, nil, map[string]any{"campaign": data})
}

// DeleteCampaign deletes a campaign by id.
func (c *Client) DeleteCampaign(ctx context.Context, campaignID string, options map[string]any) (*Response, error) {
	return c.Delete(ctx, "campaigns/"+campaignID, options)
}

// ScheduleCampaign schedules a campaign send. scheduledFor is a unix
// timestamp.
func (c *Client) ScheduleCampaign(ctx context.Context, campaignID string, scheduledFor int64) (*Response, error) {
	return c.Patch(ctx, "campaigns/"+campaignID+"/schedule", nil, map[string]any{"scheduled_for": scheduledFor})
}

// StopCampaign stops an in-progress campaign.
func (c *Client) StopCampaign(ctx context.Context, campaignID string) (*Response, error) {
	return c.Patch(ctx, "campaigns/"+campaignID+"/stop", nil, nil)
}

// ResumeCampaign resumes a stopped campaign.
func (c *Client) ResumeCampaign(ctx context.Context, campaignID string) (*Response, error) {
	return c.Patch(ctx, "campaigns/"+campaignID+"/resume", nil, nil)
}

// TestCampaign triggers a test send to the given users.
func (c *Client) TestCampaign(ctx context.Context, campaignID string, users []string) (*Response, error) {
	return c.Post(ctx, "campaigns/"+campaignID+"/test", nil, map[string]any{"users": users})
}

// QueryRecipients lists campaign recipients.
func (c *Client) QueryRecipients(ctx context.Context, params map[string]any) (*Response, error) {
	return c.Get(ctx, "recipients", map[string]any{"payload": params})
}

// RevokeTokens invalidates every token issued before the given instant.
func (c *Client) RevokeTokens(ctx context.Context, since time.Time) (*Response, error) {
	return c.UpdateAppSettings(ctx, map[string]any{
		"revoke_tokens_issued_before": since.Format(time.RFC3339),
	})
}

// RevokeUserToken invalidates one user's tokens issued before the instant.
func (c *Client) RevokeUserToken(ctx context.Context, userID string, before time.Time) (*Response, error) {
	return c.RevokeUsersToken(ctx, []string{userID}, before)
}

// RevokeUsersToken invalidates several users' tokens issued before the
// instant.
func (c *Client) RevokeUsersToken(ctx context.Context, userIDs []string, before time.Time) (*Response, error) {
	updates := make([]map[string]any, 0, len(userIDs))
	for _, userID := range userIDs {
		updates = append(updates, map[string]any{
			"id":  userID,
			"set": map[string]any{"revoke_tokens_issued_before": before.Format(time.RFC3339)},
		})
	}
	return c.UpdateUsersPartial(ctx, updates)
}

// ExportChannel requests an export of one channel; the response carries a
// task id to poll with GetExportChannelStatus.
func (c *Client) ExportChannel(ctx context.Context, channelType, channelID string, messagesSince, messagesUntil time.Time, options map[string]any) (*Response, error) {
	channel := map[string]any{"type": channelType, "id": channelID}
	if !messagesSince.IsZero() {
		channel["messages_since"] = messagesSince.Format(time.RFC3339)
	}
	if !messagesUntil.IsZero() {
		channel["messages_until"] = messagesUntil.Format(time.RFC3339)
	}
	return c.ExportChannels(ctx, []map[string]any{channel}, options)
}

// ExportChannels requests an export of several channels.
func (c *Client) ExportChannels(ctx context.Context, channels []map[string]any, options map[string]any) (*Response, error) {
	data := copyOptions(options)
	data["channels"] = channels
	return c.Post(ctx, "export_channels", nil, data)
}

// GetExportChannelStatus polls a channel export task.
func (c *Client) GetExportChannelStatus(ctx context.Context, taskID string) (*Response, error) {
	return c.Get(ctx, "export_channels/"+taskID, nil)
}

// GetTask polls an asynchronous task by id.
func (c *Client) GetTask(ctx context.Context, taskID string) (*Response, error) {
	return c.Get(ctx, "tasks/"+taskID, nil)
}

// SendUserCustomEvent delivers a custom event to a user.
func (c *Client) SendUserCustomEvent(ctx context.Context, userID string, event map[string]any) (*Response, error) {
	return c.Post(ctx, "users/"+userID+"/event", nil, map[string]any{"event": event})
}

// UpsertPushProvider creates or updates a push provider configuration.
func (c *Client) UpsertPushProvider(ctx context.Context, config map[string]any) (*Response, error) {
	return c.Post(ctx, "push_providers", nil, map[string]any{"push_provider": config})
}

// DeletePushProvider removes a push provider configuration.
func (c *Client) DeletePushProvider(ctx context.Context, providerType, name string) (*Response, error) {
	return c.Delete(ctx, "push_providers/"+providerType+"/"+name, nil)
}

// ListPushProviders lists push provider configurations.
func (c *Client) ListPushProviders(ctx context.Context) (*Response, error) {
	return c.Get(ctx, "push_providers", nil)
}

// CreateImportURL requests a presigned upload URL for an import file.
func (c *Client) CreateImportURL(ctx context.Context, filename string) (*Response, error) {
	return c.Post(ctx, "import_urls", nil, map[string]any{"filename": filename})
}

// CreateImport starts an import from a previously uploaded file. mode is
// "upsert" or "insert".
func (c *Client) CreateImport(ctx context.Context, path, mode string) (*Response, error) {
	return c.Post(ctx, "imports", nil, map[string]any{"path": path, "mode": mode})
}

// GetImport fetches an import job by id.
func (c *Client) GetImport(ctx context.Context, id string) (*Response, error) {
	return c.Get(ctx, "imports/"+id, nil)
}

// ListImports pages through import jobs.
func (c *Client) ListImports(ctx context.Context, options map[string]any) (*Response, error) {
	return c.Get(ctx, "imports", options)
}

// checkPager rejects requests that combine the mutually exclusive "next" and
// "prev" cursors.
func checkPager(op string, params map[string]any) error {
	_, hasNext := params["next"]
	_, hasPrev := params["prev"]
	if hasNext && hasPrev {
		return &UsageError{Op: op, Reason: "cannot paginate with both next and prev"}
	}
	return nil
}
