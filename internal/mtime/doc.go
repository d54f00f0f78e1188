// Package mtime resolves file modification times into a tri-state value:
// not yet queried, confirmed missing, or known to the nanosecond.
//
// How the time is obtained is behind the Stater interface. The System backend
// is chosen at build time: unix targets read st_mtim directly through
// golang.org/x/sys/unix, everything else goes through os.Stat. Either way the
// result is nanoseconds since the Unix epoch, and filesystems with coarser
// resolution simply produce trailing zero sub-second digits.
package mtime
