package event

import "fmt"

// Personal queues delivered to the authenticated session only.
const (
	NotificationsQueue     = "/user/queue/notifications"
	NotificationCountQueue = "/user/queue/notifications/count"
)

func ChannelTopic(channelID int64) string {
	return fmt.Sprintf("/topic/channel.%d", channelID)
}

func ChannelTypingTopic(channelID int64) string {
	return fmt.Sprintf("/topic/channel.%d.typing", channelID)
}

func ChannelPresenceTopic(channelID int64) string {
	return fmt.Sprintf("/topic/channel.%d.presence", channelID)
}

func DMTopic(clerkID string) string {
	return fmt.Sprintf("/topic/dm.%s", clerkID)
}

func DMTypingTopic(clerkID string) string {
	return fmt.Sprintf("/topic/dm.%s.typing", clerkID)
}
