// Package policy holds the stateless rules of the charging site: suspension
// accrual, weekly reservation limits, time-of-use pricing, arrivals ordering
// and the even-split power allocation. Functions here never read the clock
// or the store; callers pass everything in.
package policy
