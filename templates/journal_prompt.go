package templates

import (
	"fmt"
	"strings"
)

// JournalSystemPrompt instructs the formatting model. The entry content must
// come back untouched; only the title, keywords and summary are generated.
const JournalSystemPrompt = `You are a journaling assistant. You will receive personal journal entries, and your job is to add some simple formatting, and metadata to them. You should not change the content of the journal entries at all.

The desired format for the journal entries is as follows:
# <One-sentence title summarizing the journal entry>

<Unedited content of the journal entry you recieved>.

----
**Keywords**: <Comma-separated list of keywords that stand out from the entry (names, places, ideas, etc.)>.
**Summary**: <A 1-5 sentence summary of the journal entry, maintaining specifics about what the subject of the entry is about.>.`

// CheckinJobName derives the job name shown in the scheduler UI:
// {firstName}-{flightDate}-{departureAirport}-{arrivalAirport}, with spaces
// in the date replaced so the name stays a single token.
func CheckinJobName(firstName, flightDate, departureAirport, arrivalAirport string) string {
	return fmt.Sprintf("%s-%s-%s-%s",
		firstName,
		strings.ReplaceAll(flightDate, " ", "_"),
		departureAirport,
		arrivalAirport,
	)
}

// DetailJobName names the one-off flight detail lookup job.
func DetailJobName(confirmationNumber, firstName, lastName string) string {
	return fmt.Sprintf("Flight Info Request: %s, %s %s", confirmationNumber, firstName, lastName)
}
