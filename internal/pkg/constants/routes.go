package constants

// Route constants
const (
	PublicRoute        = "/"
	PayRoute           = "/pay"
	ReturnRoute        = "/return"
	NotifyRoute        = "/payu/notify"
	AdminRoute         = "/admin"
	AdminLoginRoute    = "/admin/login"
	AdminLogoutRoute   = "/admin/logout"
	AdminTxRoute       = "/admin/transactions"
	AdminNotifyRoute   = "/admin/notifications"
	AdminArchiveRoute  = "/admin/archive"
	APIV1Route         = "/api/v1"
	HealthRoute        = "/healthz"
	OrderCookieName    = "payu_order_id"
	OrderCookieMaxAge  = 3600
	PaymentFormAmount  = "amount_pln"
	PaymentFormDescKey = "description"
)
