package commands

import (
	"github.com/weisyn/nftmint/internal/cli/ui"
	"github.com/weisyn/nftmint/internal/core/notify"
	"github.com/weisyn/nftmint/pkg/types"
)

// PrintNotifications 把通知打印到终端
func PrintNotifications(notifier *notify.Notifier, components ui.Components) error {
	return notifier.Subscribe(func(n types.Notification) {
		_ = components.ShowNotification(n)
	})
}
