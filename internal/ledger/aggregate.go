package ledger

import "time"

// ============================================================
// Real balances
// ============================================================

// ComputeRealBalances derives each account's real balance: opening balance
// plus the net effect of every entry touching the account. CANCELLED
// entries carry no effect.
//
// CREDIT/DEBIT entries and TRANSFER entries are accumulated in two
// separate passes. A TRANSFER is matched by its transfer fields only;
// matching it additionally through a generic account field would count
// the movement twice. The two matching paths are mutually exclusive and
// must stay that way.
func ComputeRealBalances(accounts []Account, entries []Entry) ([]AccountBalance, error) {
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}

	net := make(map[string]int64, len(accounts))

	// Pass 1: single-account movements.
	for _, e := range entries {
		if e.Status == StatusCancelled {
			continue
		}
		switch e.Kind {
		case KindCredit:
			net[e.AccountID] += e.AmountCents
		case KindDebit:
			net[e.AccountID] -= e.AmountCents
		}
	}

	// Pass 2: transfers, one record moving money between two accounts.
	for _, e := range entries {
		if e.Kind != KindTransfer || e.Status == StatusCancelled {
			continue
		}
		net[e.TransferFromAccountID] -= e.AmountCents
		net[e.TransferToAccountID] += e.AmountCents
	}

	balances := make([]AccountBalance, 0, len(accounts))
	for _, acc := range accounts {
		balances = append(balances, AccountBalance{
			AccountID:        acc.ID,
			RealBalanceCents: acc.OpeningBalanceCents + net[acc.ID],
		})
	}
	return balances, nil
}

// ============================================================
// Period summaries
// ============================================================

// ComputePeriodSummary aggregates entries whose occurrence date falls
// inside [windowStart, windowEnd], inclusive at day granularity.
//
// When accountID is nil the summary covers all accounts and TRANSFER
// entries are excluded entirely: a transfer between two owned accounts has
// zero net effect on the combined total, and counting the amount on both
// legs would double the reported volume.
//
// When accountID is given, a TRANSFER is included if either leg matches,
// with direction determined by which leg it is: inflow at the destination,
// outflow at the source.
func ComputePeriodSummary(entries []Entry, windowStart, windowEnd time.Time, accountID *string) (PeriodSummary, error) {
	if err := ValidateEntries(entries); err != nil {
		return PeriodSummary{}, err
	}

	var sum PeriodSummary
	for _, e := range entries {
		if e.Status == StatusCancelled {
			continue
		}
		if !inWindow(e.OccurredAt, windowStart, windowEnd) {
			continue
		}

		var inflow, outflow int64
		switch e.Kind {
		case KindCredit:
			if accountID != nil && e.AccountID != *accountID {
				continue
			}
			inflow = e.AmountCents
		case KindDebit:
			if accountID != nil && e.AccountID != *accountID {
				continue
			}
			outflow = e.AmountCents
		case KindTransfer:
			if accountID == nil {
				continue // legs cancel in the all-accounts view
			}
			switch *accountID {
			case e.TransferToAccountID:
				inflow = e.AmountCents
			case e.TransferFromAccountID:
				outflow = e.AmountCents
			default:
				continue
			}
		}

		sum.TotalCreditCents += inflow
		sum.TotalDebitCents += outflow
		switch e.Status {
		case StatusConfirmed:
			sum.TotalConfirmedCents += inflow + outflow
		case StatusPending:
			sum.TotalPendingCents += inflow + outflow
		}
		sum.Count++
	}
	return sum, nil
}

// ComputeMonthlyTrend produces exactly monthsBack points, oldest first,
// ending at the calendar month containing referenceDate. Each point is a
// period summary scoped to that month.
func ComputeMonthlyTrend(entries []Entry, monthsBack int, referenceDate time.Time) ([]MonthlyTrendPoint, error) {
	if err := ValidateEntries(entries); err != nil {
		return nil, err
	}
	if monthsBack <= 0 {
		return []MonthlyTrendPoint{}, nil
	}

	// Anchor at the first of the reference month before stepping back:
	// AddDate on a day-31 date would normalize into the wrong month.
	y, m, _ := referenceDate.Date()
	anchor := time.Date(y, m, 1, 0, 0, 0, 0, referenceDate.Location())

	points := make([]MonthlyTrendPoint, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		first, last := monthWindow(anchor.AddDate(0, -i, 0))
		sum, err := ComputePeriodSummary(entries, first, last, nil)
		if err != nil {
			return nil, err
		}
		points = append(points, MonthlyTrendPoint{
			Year:             first.Year(),
			Month:            int(first.Month()),
			Label:            MonthLabel(first.Year(), int(first.Month())),
			TotalCreditCents: sum.TotalCreditCents,
			TotalDebitCents:  sum.TotalDebitCents,
		})
	}
	return points, nil
}

// ============================================================
// Month-over-month comparison
// ============================================================

// percentVariation implements the display policy for previous == 0:
// 100 when current is positive, 0 otherwise. Never NaN or Inf — those
// are meaningless on a dashboard.
func percentVariation(current, previous int64) float64 {
	if previous > 0 {
		return float64(current-previous) / float64(previous) * 100
	}
	if current > 0 {
		return 100
	}
	return 0
}

// CompareToPreviousMonth compares total credits (receivable) and total
// debits (payable) of the month containing referenceDate against the
// previous calendar month.
func CompareToPreviousMonth(entries []Entry, referenceDate time.Time) (MonthComparison, error) {
	if err := ValidateEntries(entries); err != nil {
		return MonthComparison{}, err
	}

	curFirst, curLast := monthWindow(referenceDate)
	prevFirst, prevLast := monthWindow(curFirst.AddDate(0, 0, -1))

	current, err := ComputePeriodSummary(entries, curFirst, curLast, nil)
	if err != nil {
		return MonthComparison{}, err
	}
	previous, err := ComputePeriodSummary(entries, prevFirst, prevLast, nil)
	if err != nil {
		return MonthComparison{}, err
	}

	return MonthComparison{
		Receivable: Comparison{
			CurrentCents:     current.TotalCreditCents,
			PreviousCents:    previous.TotalCreditCents,
			PercentVariation: percentVariation(current.TotalCreditCents, previous.TotalCreditCents),
		},
		Payable: Comparison{
			CurrentCents:     current.TotalDebitCents,
			PreviousCents:    previous.TotalDebitCents,
			PercentVariation: percentVariation(current.TotalDebitCents, previous.TotalDebitCents),
		},
	}, nil
}

// ============================================================
// Commitments
// ============================================================

// BucketCommitments splits PENDING entries into due-today and overdue
// buckets using local calendar-day comparison. CONFIRMED and CANCELLED
// entries never appear in either bucket.
func BucketCommitments(entries []Entry, today time.Time) (CommitmentBuckets, error) {
	if err := ValidateEntries(entries); err != nil {
		return CommitmentBuckets{}, err
	}

	buckets := CommitmentBuckets{
		DueToday: []Entry{},
		Overdue:  []Entry{},
	}
	dayStart := startOfDay(today)
	for _, e := range entries {
		if e.Status != StatusPending {
			continue
		}
		switch {
		case sameCalendarDay(e.OccurredAt, today):
			buckets.DueToday = append(buckets.DueToday, e)
		case startOfDay(e.OccurredAt).Before(dayStart):
			buckets.Overdue = append(buckets.Overdue, e)
		}
	}
	return buckets, nil
}
