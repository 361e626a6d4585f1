package model

// Notice is a stable, machine-readable note attached to a successful result
// which carries no data, or less data than asked for.
type Notice string

const (
	NoticeNone               Notice = ""
	NoticeNoAccounts         Notice = "NO_ACCOUNTS"
	NoticeLogEmpty           Notice = "LOG_EMPTY"
	NoticeNoActivityInWindow Notice = "NO_ACTIVITY_IN_WINDOW"
	NoticeNoActivityDaysYet  Notice = "NO_ACTIVITY_DAYS_YET"
)
