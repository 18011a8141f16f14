package stats

import (
	"github.com/maka2016/maka-stats/internal/types"
	"github.com/shopspring/decimal"
)

// TermKind discriminates the extra dimension of the term statistics table.
type TermKind string

const (
	TermKindSearch   TermKind = "search"
	TermKindTemplate TermKind = "template"
)

func (k TermKind) Validate() bool {
	switch k {
	case TermKindSearch, TermKindTemplate:
		return true
	default:
		return false
	}
}

// DailyStatRow is one output row of the daily job. Natural key:
// (tenant_id, stat_date, device, channel, cohort). GMV is persisted in major
// currency units; GMVCents is the internal pre-conversion value and is never
// written to the store.
type DailyStatRow struct {
	ID       string                `db:"id"`
	TenantID string                `db:"tenant_id"`
	StatDate string                `db:"stat_date"`
	Device   types.DeviceType      `db:"device"`
	Channel  string                `db:"channel"`
	Cohort   types.LifecycleCohort `db:"cohort"`

	ViewPV      int64 `db:"view_pv"`
	ViewUV      int64 `db:"view_uv"`
	ClickPV     int64 `db:"click_pv"`
	ClickUV     int64 `db:"click_uv"`
	InterceptPV int64 `db:"intercept_pv"`
	InterceptUV int64 `db:"intercept_uv"`
	CreatePV    int64 `db:"create_pv"`
	CreateUV    int64 `db:"create_uv"`
	SuccessPV   int64 `db:"success_pv"`
	SuccessUV   int64 `db:"success_uv"`
	OrderCount  int64 `db:"order_count"`

	GMV      decimal.Decimal `db:"gmv"`
	GMVCents int64           `db:"-"`
}

// Zero reports whether every metric of the row is zero. All-zero rows are
// omitted from storage to bound table growth.
func (r *DailyStatRow) Zero() bool {
	return r.ViewPV == 0 && r.ViewUV == 0 &&
		r.ClickPV == 0 && r.ClickUV == 0 &&
		r.InterceptPV == 0 && r.InterceptUV == 0 &&
		r.CreatePV == 0 && r.CreateUV == 0 &&
		r.SuccessPV == 0 && r.SuccessUV == 0 &&
		r.OrderCount == 0 && r.GMVCents == 0
}

// TermStatRow is one output row of the term job. Natural key:
// (tenant_id, stat_date, term_kind, term, device).
type TermStatRow struct {
	ID       string           `db:"id"`
	TenantID string           `db:"tenant_id"`
	StatDate string           `db:"stat_date"`
	TermKind TermKind         `db:"term_kind"`
	Term     string           `db:"term"`
	Device   types.DeviceType `db:"device"`

	ViewPV     int64 `db:"view_pv"`
	ViewUV     int64 `db:"view_uv"`
	ClickPV    int64 `db:"click_pv"`
	ClickUV    int64 `db:"click_uv"`
	CreatePV   int64 `db:"create_pv"`
	CreateUV   int64 `db:"create_uv"`
	SuccessPV  int64 `db:"success_pv"`
	SuccessUV  int64 `db:"success_uv"`
	OrderCount int64 `db:"order_count"`

	GMV      decimal.Decimal `db:"gmv"`
	GMVCents int64           `db:"-"`
}

func (r *TermStatRow) Zero() bool {
	return r.ViewPV == 0 && r.ViewUV == 0 &&
		r.ClickPV == 0 && r.ClickUV == 0 &&
		r.CreatePV == 0 && r.CreateUV == 0 &&
		r.SuccessPV == 0 && r.SuccessUV == 0 &&
		r.OrderCount == 0 && r.GMVCents == 0
}

// CohortWindowRow is one output row of the cohort-window job: behavior of
// users still inside their registration-anchored window of WindowDays days.
// Natural key: (tenant_id, stat_date, window_days, device).
type CohortWindowRow struct {
	ID         string           `db:"id"`
	TenantID   string           `db:"tenant_id"`
	StatDate   string           `db:"stat_date"`
	WindowDays int              `db:"window_days"`
	Device     types.DeviceType `db:"device"`

	ActivePV   int64 `db:"active_pv"`
	ActiveUV   int64 `db:"active_uv"`
	CreatePV   int64 `db:"create_pv"`
	CreateUV   int64 `db:"create_uv"`
	OrderCount int64 `db:"order_count"`

	GMV      decimal.Decimal `db:"gmv"`
	GMVCents int64           `db:"-"`
}

func (r *CohortWindowRow) Zero() bool {
	return r.ActivePV == 0 && r.ActiveUV == 0 &&
		r.CreatePV == 0 && r.CreateUV == 0 &&
		r.OrderCount == 0 && r.GMVCents == 0
}

// WriteReport summarizes a materialization pass. Batches can fail
// independently; a failed batch never discards batches already committed.
type WriteReport struct {
	Written       int
	Failed        int
	Batches       int
	FailedBatches int
}

func (r *WriteReport) Merge(other *WriteReport) {
	if other == nil {
		return
	}
	r.Written += other.Written
	r.Failed += other.Failed
	r.Batches += other.Batches
	r.FailedBatches += other.FailedBatches
}
