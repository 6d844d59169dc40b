/*
Package log implements the gnbuild logging framework on top of seelog.

See https://github.com/cihub/seelog/wiki/Log-levels for an introduction to the
different logging levels.

Logging is disabled until Init (or SetLogWriter) is called, so the library
packages stay silent when used without the gbe tool.

Errors are logged once, as early as possible: when calling external packages
that create an error, we wrap that error in a log.Error() call. If we create
our own errors, we use log.Error[f]() to do that. If we call panic() we create
the error for that with log.Critical[f](). Errors that are part of the normal
API of a package (like base64.ErrInvalidEncoding) are returned without
logging, the caller decides.
*/
package log
