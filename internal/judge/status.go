package judge

// Judge0 status IDs. IDs 1 and 2 mean the submission is still in flight;
// everything at 3 or above is terminal.
const (
	statusInQueue         = 1
	statusProcessing      = 2
	statusAccepted        = 3
	statusWrongAnswer     = 4
	statusTimeLimit       = 5
	statusCompilationErr  = 6
	statusRuntimeErrFirst = 7
	statusRuntimeErrLast  = 12
	statusInternalError   = 13
	statusExecFormatError = 14
)

// Verdicts produced by status mapping. VerdictProcessingTimeout is assigned
// locally when the poll budget runs out before Judge0 reports a terminal
// status.
const (
	VerdictAccepted          = "Accepted"
	VerdictWrongAnswer       = "Wrong Answer"
	VerdictTimeLimitExceeded = "Time Limit Exceeded"
	VerdictCompilationError  = "Compilation Error"
	VerdictRuntimeError      = "Runtime Error"
	VerdictInternalError     = "Internal Error"
	VerdictExecFormatError   = "Exec Format Error"
	VerdictProcessingTimeout = "Processing Timeout"
	VerdictUnknown           = "Unknown"
)

// isTerminalStatus reports whether a Judge0 status ID is final
func isTerminalStatus(id int) bool {
	return id >= statusAccepted
}

// verdictForStatus maps a terminal Judge0 status ID to a verdict string
func verdictForStatus(id int) string {
	switch {
	case id == statusAccepted:
		return VerdictAccepted
	case id == statusWrongAnswer:
		return VerdictWrongAnswer
	case id == statusTimeLimit:
		return VerdictTimeLimitExceeded
	case id == statusCompilationErr:
		return VerdictCompilationError
	case id >= statusRuntimeErrFirst && id <= statusRuntimeErrLast:
		return VerdictRuntimeError
	case id == statusInternalError:
		return VerdictInternalError
	case id == statusExecFormatError:
		return VerdictExecFormatError
	default:
		return VerdictUnknown
	}
}
