package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"os"
	"os/exec"
	"runtime/debug"
	"strings"
)

// WrapProcess launches the tagger binary as a child process and relays its
// stderr, passing JSON log lines through untouched and folding anything that
// looks like a panic into a single structured fatal entry.
func WrapProcess(executable string, arg ...string) {
	hptLogger := NewLogger("Logs wrapper")
	defer handlePanic(hptLogger)

	r, w, err := os.Pipe()
	if err != nil {
		hptLogger.Fatal().Err(err).Msg("Could not create pipe for logs")
		os.Exit(1)
	}

	cmd := exec.Command(executable, arg...)
	cmd.Stderr = w

	if err = cmd.Start(); err != nil {
		hptLogger.Fatal().Err(err).Msg("Could not launch main process")
		os.Exit(1)
	}
	exitCodeCh := make(chan int)
	logsCh := make(chan []byte)

	go waitForCommandToExit(cmd, hptLogger, exitCodeCh)
	go collectLogs(r, hptLogger, logsCh)

	panicLogsBuilder := strings.Builder{}
	foundPanic := false
	for {
		select {
		case exitCode := <-exitCodeCh:
			handleExit(exitCode, panicLogsBuilder.String(), hptLogger)
		case logsLineBytes := <-logsCh:
			foundPanic = handleLogLine(logsLineBytes, foundPanic, &panicLogsBuilder, hptLogger)
		}
	}
}

func waitForCommandToExit(cmd *exec.Cmd, hptLogger zerolog.Logger, exitCodeCh chan<- int) {
	defer handlePanic(hptLogger)
	err := cmd.Wait()
	if err == nil {
		exitCodeCh <- 0
		return
	}
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		exitCodeCh <- 1
		return
	}
	exitCodeCh <- exitErr.ExitCode()
}

func collectLogs(r *os.File, hptLogger zerolog.Logger, logsCh chan<- []byte) {
	defer handlePanic(hptLogger)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		logsCh <- scanner.Bytes()
	}
	if err := scanner.Err(); err != nil {
		hptLogger.Fatal().Err(err).Msg("Error scanning piped main process's Stderr")
		os.Exit(1)
	}
}

func handleExit(exitCode int, panicLogs string, hptLogger zerolog.Logger) {
	if exitCode == 0 {
		hptLogger.Info().Msg("Exited with code 0")
	} else {
		hptLogger.
			Fatal().
			Err(errors.New(panicLogs)).
			Msgf("Panicked and exited with code: %d", exitCode)
	}
	os.Exit(exitCode)
}

func handleLogLine(logsLineBytes []byte, foundPanic bool, builder *strings.Builder, hptLogger zerolog.Logger) bool {
	logsLine := string(logsLineBytes)
	if !foundPanic && strings.HasPrefix(logsLine, "panic") {
		foundPanic = true
	}
	switch {
	case len(logsLineBytes) == 0:
		return foundPanic
	case foundPanic:
		builder.WriteString(fmt.Sprintf("%s\n", logsLine))
	case isJSON(logsLineBytes):
		println(logsLine)
	default:
		hptLogger.Error().Msgf("Got log line that is not JSON formatted: '%s'", logsLine)
	}
	return foundPanic
}

func handlePanic(hptLogger zerolog.Logger) {
	r := recover()
	if r == nil {
		return
	}
	hptLogger.Fatal().
		Caller().
		Str("error", fmt.Sprint(r)).
		Str("stack_trace", string(debug.Stack())).
		Msg("Program panicked and exited")
}

func isJSON(b []byte) bool {
	var js json.RawMessage
	err := json.Unmarshal(b, &js)
	return err == nil && js != nil
}
