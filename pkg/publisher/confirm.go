package publisher

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// confirmSend prompts the user to confirm the send before the pipeline
// starts, showing exactly the parameters the broker will see. A "no"
// answer is reported through proceed=false, not an error; declining
// exits the process cleanly (exit 0).
func confirmSend(topic, baseURL string, lineCount int, rate float64) (proceed bool, err error) {
	lines := "unknown (reading from standard input)"
	if lineCount >= 0 {
		lines = fmt.Sprintf("%d", lineCount)
	}

	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Publish to topic %q via %s: %s lines at %.2f/s. Continue?", topic, baseURL, lines, rate),
		Default: true,
	}

	proceed = true
	if err := survey.AskOne(prompt, &proceed); err != nil {
		return false, err
	}
	return proceed, nil
}
