/*
Package logger provides logging functionality to a trailhead app by defining the required behavior in [Logger]
and providing an implementation of it with [TrailsLogger].

# Overview

The Logger interface outputs messages at certain levels of importance,
expressed as [log/slog.Level].
[TrailsLogger] writes through a [*log/slog.Logger],
so the handler it is constructed with decides the format and the minimum level.

Log messages emitted by [TrailsLogger] are composed of a few parts:
  - timestamp
  - log level
  - call site
  - message
  - log context

Here's an example, written by a text handler:

	time=2023-11-02T15:55:21.000Z level=DEBUG source=basic/request_param.go:43 msg="bound params" log_context.data.username=userA

The call site is the file, line number, and parent directory of the code calling a [TrailsLogger] method.
Pass [TruncSourceAttr] as a handler's ReplaceAttr to render it this way.
The log context is a [*LogContext], which allows including data inessential to the message proper.

# SkipLogger

Sometimes, especially with internal packages, the file and line number in a log needs to be configurable.
[SkipLogger] provides additional configuration functionality by setting the number of frames to skip
back in order to reach the desired caller.

# SentryLogger

[SentryLogger] wraps another [Logger] and reports the error in a [LogContext]
to Sentry when logging a warning or an error.
*/
package logger
