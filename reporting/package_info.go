// Package reporting contains the reporters of unit-harness: a console reporter that is
// always active, and optional reporters that write HTML, JUnit XML, JSON lines and
// Prometheus textfile reports, or post a run summary to a webhook. New builds the set of
// reporters selected by a Config.
package reporting
