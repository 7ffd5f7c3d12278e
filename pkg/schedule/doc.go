// Package schedule builds the monotone sequence of accrual periods a
// fixed or floating leg pays on: (start, end, pay, year-fraction) tuples
// derived from a start/end date, a payment frequency, a day-count
// convention, and a business-day convention. Periods are contiguous and
// non-overlapping by construction.
package schedule
