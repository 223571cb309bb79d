package consts

const (
	UserTrackingListKey = "user:tracking:list:"
)

const (
	UserTrackingListTTL = 300 // 秒
)
