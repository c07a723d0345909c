package streamchat

import "context"

// ChannelBatchUpdater accumulates one batch operation applied to many
// channels at once. Build it fluently, then submit with
// Client.UpdateChannelsBatch.
type ChannelBatchUpdater struct {
	operation string
	data      map[string]any
}

func batchOp(operation string, data map[string]any) *ChannelBatchUpdater {
	return &ChannelBatchUpdater{operation: operation, data: data}
}

// AddMembers adds users to every matched channel.
func (u *ChannelBatchUpdater) AddMembers(userIDs []string) *ChannelBatchUpdater {
	return batchOp("addMembers", map[string]any{"members": userIDs})
}

// RemoveMembers removes users from every matched channel.
func (u *ChannelBatchUpdater) RemoveMembers(userIDs []string) *ChannelBatchUpdater {
	return batchOp("removeMembers", map[string]any{"members": userIDs})
}

// InviteMembers invites users to every matched channel.
func (u *ChannelBatchUpdater) InviteMembers(userIDs []string) *ChannelBatchUpdater {
	return batchOp("invites", map[string]any{"members": userIDs})
}

// AddModerators grants the moderator role on every matched channel.
func (u *ChannelBatchUpdater) AddModerators(userIDs []string) *ChannelBatchUpdater {
	return batchOp("addModerators", map[string]any{"members": userIDs})
}

// DemoteModerators removes the moderator role on every matched channel.
func (u *ChannelBatchUpdater) DemoteModerators(userIDs []string) *ChannelBatchUpdater {
	return batchOp("demoteModerators", map[string]any{"members": userIDs})
}

// AssignRoles assigns channel roles, each entry shaped as
// {"user_id": ..., "channel_role": ...}.
func (u *ChannelBatchUpdater) AssignRoles(assignments []map[string]any) *ChannelBatchUpdater {
	return batchOp("assignRoles", map[string]any{"assign_roles": assignments})
}

// Hide hides every matched channel for the given users.
func (u *ChannelBatchUpdater) Hide(userIDs []string) *ChannelBatchUpdater {
	return batchOp("hide", map[string]any{"members": userIDs})
}

// Show shows every matched channel for the given users.
func (u *ChannelBatchUpdater) Show(userIDs []string) *ChannelBatchUpdater {
	return batchOp("show", map[string]any{"members": userIDs})
}

// Archive archives every matched channel for the given users.
func (u *ChannelBatchUpdater) Archive(userIDs []string) *ChannelBatchUpdater {
	return batchOp("archive", map[string]any{"members": userIDs})
}

// Unarchive unarchives every matched channel for the given users.
func (u *ChannelBatchUpdater) Unarchive(userIDs []string) *ChannelBatchUpdater {
	return batchOp("unarchive", map[string]any{"members": userIDs})
}

// UpdateData merges custom data into every matched channel.
func (u *ChannelBatchUpdater) UpdateData(data map[string]any) *ChannelBatchUpdater {
	return batchOp("updateData", map[string]any{"data": data})
}

// AddFilterTags adds filter tags on every matched channel.
func (u *ChannelBatchUpdater) AddFilterTags(tags []string) *ChannelBatchUpdater {
	return batchOp("filter_tags_update", map[string]any{"add_filter_tags": tags})
}

// RemoveFilterTags removes filter tags on every matched channel.
func (u *ChannelBatchUpdater) RemoveFilterTags(tags []string) *ChannelBatchUpdater {
	return batchOp("filter_tags_update", map[string]any{"remove_filter_tags": tags})
}

// BatchUpdater returns a builder for UpdateChannelsBatch operations.
func (c *Client) BatchUpdater() *ChannelBatchUpdater { return &ChannelBatchUpdater{} }

// UpdateChannelsBatch applies one batch operation to all channels matching
// filter. The response carries a task id to poll with GetTask.
func (c *Client) UpdateChannelsBatch(ctx context.Context, filter map[string]any, op *ChannelBatchUpdater) (*Response, error) {
	if op == nil || op.operation == "" {
		return nil, &UsageError{Op: "update channels batch", Reason: "a batch operation is required"}
	}
	if len(filter) == 0 {
		return nil, &UsageError{Op: "update channels batch", Reason: "a channel filter is required"}
	}
	data := copyOptions(op.data)
	data["operation"] = op.operation
	data["filter"] = filter
	return c.Post(ctx, "channels/batch", nil, data)
}
