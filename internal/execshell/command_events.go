package execshell

// CommandEventObserver is notified as gh or find invocations progress.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	CommandCompleted(command ShellCommand, result ExecutionResult)
	// CommandExecutionFailed fires when the process never produced a result.
	CommandExecutionFailed(command ShellCommand, failure error)
}

// commandEventFanout forwards each lifecycle event to every registered observer in order.
type commandEventFanout []CommandEventObserver

func newCommandEventFanout(observers []CommandEventObserver) commandEventFanout {
	fanout := make(commandEventFanout, 0, len(observers))
	for _, observer := range observers {
		if observer != nil {
			fanout = append(fanout, observer)
		}
	}
	return fanout
}

func (fanout commandEventFanout) started(command ShellCommand) {
	for _, observer := range fanout {
		observer.CommandStarted(command)
	}
}

func (fanout commandEventFanout) completed(command ShellCommand, result ExecutionResult) {
	for _, observer := range fanout {
		observer.CommandCompleted(command, result)
	}
}

func (fanout commandEventFanout) failed(command ShellCommand, failure error) {
	for _, observer := range fanout {
		observer.CommandExecutionFailed(command, failure)
	}
}
