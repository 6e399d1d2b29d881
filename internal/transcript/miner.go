// Package transcript mines assistant turns from an append-only JSONL conversation
// log and reduces them to short speakable text.
package transcript

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/tidwall/gjson"
)

type Message struct {
	Text      string
	Timestamp string
	ID        string
	// Offset is the byte offset just past the line that carried this message.
	Offset int64
}

type Result struct {
	Messages []Message
	Cursor   int64
	Skipped  int

	// Restarted is set when the stored cursor was past the end of the file and
	// reading began again at 0.
	Restarted bool
}

// Last returns the text of the newest message, or "".
func (r Result) Last() string {
	if len(r.Messages) == 0 {
		return ""
	}

	return r.Messages[len(r.Messages)-1].Text
}

// ExtractNew reads every complete line after cursor and returns the assistant text
// parts found in them. The returned cursor is cursor plus the byte length of the
// consumed lines; a trailing line without a newline is left for the next call.
// A missing file yields an empty result with the cursor unchanged. A cursor past
// the end of the file means the log was replaced, so reading restarts at 0.
func ExtractNew(path string, cursor int64) (Result, error) {
	result := Result{Messages: []Message{}, Cursor: cursor}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, nil
		}
		return result, fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return result, fmt.Errorf("stat transcript: %w", err)
	}

	start := cursor
	if start < 0 || start > info.Size() {
		start = 0
		result.Restarted = true
	}
	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return result, fmt.Errorf("seek transcript: %w", err)
	}

	offset := start
	reader := bufio.NewReader(f)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			result.Cursor = offset
			return result, fmt.Errorf("read transcript: %w", err)
		}

		offset += int64(len(line))
		messages, ok := parseLine(line, offset)
		if !ok {
			result.Skipped++
			continue
		}
		result.Messages = append(result.Messages, messages...)
	}

	result.Cursor = offset
	return result, nil
}

// parseLine reports false only for lines that are not valid JSON.
func parseLine(line []byte, offset int64) ([]Message, bool) {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) == 0 {
		return nil, true
	}
	if !gjson.ValidBytes(trimmed) {
		return nil, false
	}

	record := gjson.ParseBytes(trimmed)
	if record.Get("type").String() != "assistant" {
		return nil, true
	}
	message := record.Get("message")
	if message.Get("role").String() != "assistant" {
		return nil, true
	}

	timestamp := record.Get("timestamp").String()
	id := record.Get("uuid").String()
	build := func(text string) Message {
		return Message{Text: text, Timestamp: timestamp, ID: id, Offset: offset}
	}

	content := message.Get("content")
	messages := []Message{}
	switch {
	case content.Type == gjson.String:
		if text := strings.TrimSpace(content.String()); text != "" {
			messages = append(messages, build(text))
		}
	case content.IsArray():
		content.ForEach(func(_, part gjson.Result) bool {
			if part.Get("type").String() != "text" {
				return true
			}
			if text := strings.TrimSpace(part.Get("text").String()); text != "" {
				messages = append(messages, build(text))
			}
			return true
		})
	}

	return messages, true
}
