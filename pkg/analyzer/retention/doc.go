// Package retention prunes stored analysis runs by age and count, on
// demand or on a cron schedule.
package retention
