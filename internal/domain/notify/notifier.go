package notify

import "context"

type HostNotification struct {
	HostEmail   string `json:"host_email"`
	HostName    string `json:"host_name"`
	VisitorID   uint64 `json:"visitor_id"`
	VisitorName string `json:"visitor_name"`
	Purpose     string `json:"purpose"`
}

// Notifier tells a host that a visitor is waiting. Delivery is best-effort.
type Notifier interface {
	NotifyHost(ctx context.Context, n HostNotification) error
}
