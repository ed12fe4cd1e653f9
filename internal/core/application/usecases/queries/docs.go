// Package queries contains read-only operations. Handlers read straight from
// the session store or the database and never open a unit of work.
package queries
