package constant

// SuggestionErrorReason is the fixed reason reported when the AI call or its
// response parsing fails and the safe no-change default is substituted.
const SuggestionErrorReason = "AI processing failed; no suggestion available"

// SuggestionPromptTemplate asks the model to judge whether the current FAQ
// needs revising for the pasted release notes, answering in the exact
// four-field JSON shape the service parses. Placeholders: update content,
// current question, current answer.
const SuggestionPromptTemplate = `Given the release notes below, decide whether the existing FAQ entry needs to be revised, and propose the revision if so.

[Release notes]
%s

[Existing FAQ]
Question: %s
Answer: %s

Respond in exactly this JSON format:
{
    "needs_update": true/false,
    "reason": "why a revision is (not) needed",
    "suggested_question": "revised question (unchanged if no revision is needed)",
    "suggested_answer": "revised answer (unchanged if no revision is needed)"
}

Return ONLY the JSON. No other text.`
