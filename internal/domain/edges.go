package domain

import "time"

// Like is a directed edge, unique per ordered (from, to) pair. A mutual pair
// of likes constitutes a match; matches are never stored separately.
type Like struct {
	FromUserID int64     `json:"from_user_id" db:"from_user_id"`
	ToUserID   int64     `json:"to_user_id" db:"to_user_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ReportReason is the closed set of reasons a profile can be reported for.
type ReportReason string

const (
	ReportReasonSpam       ReportReason = "spam"
	ReportReasonHarassment ReportReason = "harassment"
	ReportReasonNSFW       ReportReason = "nsfw"
	ReportReasonFake       ReportReason = "fake"
	ReportReasonOther      ReportReason = "other"
)

var ReportReasons = []ReportReason{
	ReportReasonSpam,
	ReportReasonHarassment,
	ReportReasonNSFW,
	ReportReasonFake,
	ReportReasonOther,
}

func (r ReportReason) Valid() bool {
	for _, known := range ReportReasons {
		if r == known {
			return true
		}
	}
	return false
}

// Report is a directed edge; its existence permanently excludes the reported
// user from the reporter's future candidate queues.
type Report struct {
	ID             int64        `json:"id" db:"id"`
	ReporterUserID int64        `json:"reporter_user_id" db:"reporter_user_id"`
	ReportedUserID int64        `json:"reported_user_id" db:"reported_user_id"`
	Reason         ReportReason `json:"reason" db:"reason"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
}
