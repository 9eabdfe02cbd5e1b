package service

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// documentPromptChars caps how much of an uploaded transcript goes to the
// detector; the full transcript is still returned to the client.
const documentPromptChars = 3000

func detectTextPrompt(text string) string {
	return "Detect the language of the following text and provide its ISO code. Then translate it to English. " +
		"Respond with a single JSON object with exactly these string fields: language, isoCode, translation.\n" +
		"Text: " + text
}

func detectDocumentPrompt(transcript string) string {
	return fmt.Sprintf(`You are a language detector and translator.
Given the following text, return valid JSON only.

JSON format:
{
  "detected_language": "name of language in English",
  "iso_code": "ISO 639-1 code (like 'en', 'fr', 'el')",
  "translation_to_english": "short English translation of the text"
}
Text:
---
%s
---
`, truncateRunes(transcript, documentPromptChars))
}

func summaryPrompt(transcript, targetLanguage, detectedLanguage string) string {
	var b strings.Builder
	b.WriteString("You are a professional document summarizer.\n")
	fmt.Fprintf(&b, "Please create a comprehensive summary of the following transcript in %s.\n", targetLanguage)
	if detectedLanguage != "" {
		fmt.Fprintf(&b, "The transcript was detected as %s.\n", detectedLanguage)
	}
	b.WriteString("\nInstructions:\n")
	b.WriteString("- Provide a clear, concise summary that captures the main points\n")
	fmt.Fprintf(&b, "- Use proper grammar and formatting in %s\n", targetLanguage)
	b.WriteString("- Keep the summary informative but accessible\n")
	b.WriteString("- Reply with the summary text only\n")
	b.WriteString("\nTranscript to summarize:\n---\n")
	b.WriteString(transcript)
	b.WriteString("\n---\n")
	return b.String()
}

func graphPrompt(text string) string {
	return `Extract a knowledge graph from the text below.
Return valid JSON only, in exactly this shape:
{
  "nodes": [{"id": "entity name", "type": "Person|Place|Work|Institution|Concept|Event"}],
  "relationships": [{"source": "entity name", "target": "entity name", "type": "RELATIONSHIP_LABEL"}]
}
Every relationship source and target must be the id of a listed node.
Text:
---
` + text + `
---
`
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
