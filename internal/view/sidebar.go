package view

import "github.com/bolt162/buzzlink-app/internal/model"

// MergeSidebar produces the DM sidebar: existing conversations first, then
// workspace members without one, as empty conversations. A member who already
// has a conversation (same clerk id) is filtered rather than merged; the
// conversation record wins. The viewer is never listed.
func MergeSidebar(conversations []model.Conversation, members []model.User, selfClerkID string) []model.Conversation {
	known := make(map[string]struct{}, len(conversations))
	for _, c := range conversations {
		known[c.OtherUser.ClerkID] = struct{}{}
	}

	fresh := Filter(members, func(u model.User) bool {
		if u.ClerkID == selfClerkID {
			return false
		}
		_, exists := known[u.ClerkID]
		return !exists
	})

	out := make([]model.Conversation, 0, len(conversations)+len(fresh))
	out = append(out, conversations...)
	for _, u := range fresh {
		out = append(out, model.NewConversationWith(u))
	}
	return out
}
