// Package jobs runs the ordering service's scheduled maintenance.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field and are started and
// stopped together through JobManager:
//
//	jobManager := jobs.NewJobManager(logger, sessionExpiryJob)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// SessionExpiryJob deletes sessions idle for longer than the session TTL. It is
// only scheduled for stores without native expiry; the Redis store expires keys
// itself.
package jobs
