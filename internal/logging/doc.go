// Package logging builds the slog loggers used across lineup.
//
// Two handler formats are supported: a console handler for interactive use
// and a JSON handler for log files and machine consumption. NewFromConfig
// wires stdout plus a rotatable file in the configured log directory.
package logging
