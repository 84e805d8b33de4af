// Package jobs provides scheduled background tasks for the laundry platform.
//
// Jobs are cron based (github.com/robfig/cron/v3, six field specs with
// seconds) and run as the platform rather than as a user.
//
// # Available Jobs
//
//  1. CustodyAuditJob - re-verifies the custody chain of every item handed over
//     within the audit window and logs each break as a data-quality warning
//  2. OverdueOrdersJob - lists orders past their due time across all tenants
//
// # Usage
//
//	jobManager := jobs.NewJobManager(auditHandler, overdueHandler, systemActor, schedule, metrics, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Broken custody chains are reported and never corrected
//   - Storage failures are logged and counted as failed runs
//   - Failed job starts stop any already running jobs
package jobs
