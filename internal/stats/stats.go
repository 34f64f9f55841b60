// Package stats summarizes a conversation transcript: message counts per
// speaker and a token estimate.
package stats

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkoukk/tiktoken-go"

	"github.com/user/archiveview/pkg/archive"
)

// unnamedSpeaker groups messages without a speaker.
const unnamedSpeaker = "(unnamed)"

// Counter estimates token usage of transcripts.
type Counter struct {
	tokenizer *tiktoken.Tiktoken
}

// New creates a Counter using the tokenizer for model (e.g. "gpt-4").
func New(model string) (*Counter, error) {
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Fallback to cl100k_base for unknown models
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil, fmt.Errorf("get tokenizer: %w", err)
		}
	}
	return &Counter{tokenizer: enc}, nil
}

func (c *Counter) countTokens(text string) int {
	return len(c.tokenizer.Encode(text, nil, nil))
}

// SpeakerStats aggregates the messages of one speaker.
type SpeakerStats struct {
	Speaker  string
	Messages int
	Tokens   int
}

// Summary aggregates a whole transcript.
type Summary struct {
	Messages int
	Tokens   int
	Speakers []SpeakerStats
}

// Summarize counts messages and tokens, overall and per speaker. Speakers are
// ordered by first appearance.
func (c *Counter) Summarize(record *archive.Record) Summary {
	var s Summary
	index := make(map[string]int)
	for _, m := range record.Messages {
		speaker := m.Speaker
		if speaker == "" {
			speaker = unnamedSpeaker
		}
		i, ok := index[speaker]
		if !ok {
			i = len(s.Speakers)
			index[speaker] = i
			s.Speakers = append(s.Speakers, SpeakerStats{Speaker: speaker})
		}
		tokens := c.countTokens(m.Content)
		s.Speakers[i].Messages++
		s.Speakers[i].Tokens += tokens
		s.Messages++
		s.Tokens += tokens
	}
	return s
}

// Write prints the summary as an aligned table.
func (s Summary) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SPEAKER\tMESSAGES\tTOKENS")
	for _, sp := range s.Speakers {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", sp.Speaker, sp.Messages, sp.Tokens)
	}
	fmt.Fprintf(tw, "total\t%d\t%d\n", s.Messages, s.Tokens)
	return tw.Flush()
}
