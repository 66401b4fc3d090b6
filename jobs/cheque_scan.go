package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

// staleChequeAfter is how long past its cheque date a post-dated voucher may
// stay uncleared before the scan reports it.
const staleChequeAfter = 7 * 24 * time.Hour

const staleChequeSQL = `
SELECT v.id, v.voucher_no, v.type, v.cheque_no, v.cheque_date, v.user_id
FROM vouchers v
WHERE v.deleted_at IS NULL
  AND v.is_post_dated = 1
  AND v.cheque_date IS NOT NULL
  AND v.cheque_date <= $1
ORDER BY v.cheque_date`

// NewStaleChequeScanHandler reports post-dated cheque vouchers whose cheque
// date passed without the cheque being cleared. Clearing stays a manual
// action; the scan only surfaces the backlog.
func NewStaleChequeScanHandler(pool *pgxpool.Pool, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload ScanPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		cutoff := time.Now().UTC().Add(-staleChequeAfter)
		rows, err := pool.Query(ctx, staleChequeSQL, cutoff)
		if err != nil {
			return err
		}
		defer rows.Close()

		stale := 0
		for rows.Next() {
			var (
				id          int64
				voucherNo   int64
				voucherType int16
				chequeNo    *string
				chequeDate  time.Time
				userID      int64
			)
			if err := rows.Scan(&id, &voucherNo, &voucherType, &chequeNo, &chequeDate, &userID); err != nil {
				return err
			}
			stale++
			attrs := []any{
				slog.String("run_id", payload.RunID),
				slog.Int64("voucher_id", id),
				slog.Int64("voucher_no", voucherNo),
				slog.Int("voucher_type", int(voucherType)),
				slog.Time("cheque_date", chequeDate),
				slog.Int64("user_id", userID),
			}
			if chequeNo != nil {
				attrs = append(attrs, slog.String("cheque_no", *chequeNo))
			}
			logger.Warn("post-dated cheque past due and uncleared", attrs...)
		}
		if err := rows.Err(); err != nil {
			return err
		}
		logger.Info("stale cheque scan finished",
			slog.String("run_id", payload.RunID),
			slog.Int("stale", stale),
		)
		return nil
	}
}
