package ai

import "fmt"

// systemPrompt frames every transform request. The sentinel instruction
// lets providers detect the no-change case reliably.
const systemPrompt = "You are an editor embedded in a writing tool. " +
	"Return only the revised text with no commentary or preamble. " +
	"If the text needs no changes, return exactly " + NoChangeSentinel + "."

// BuildPrompt renders the user prompt for a request.
func BuildPrompt(req Request) (string, error) {
	if req.Text == "" {
		return "", ErrEmptyText
	}

	var instruction string
	switch req.Kind {
	case KindGrammar:
		instruction = "Fix any grammatical errors in the following text. Change nothing else."
	case KindSpelling:
		instruction = "Fix any spelling mistakes in the following text. Change nothing else."
	case KindSummarize:
		instruction = "Summarize the following text, keeping the author's voice."
	case KindRephrase:
		instruction = "Rephrase the following text while preserving its meaning."
	case KindExpand:
		instruction = "Expand the following text with more detail, keeping the author's voice."
	case KindShrink:
		instruction = "Tighten the following text, removing filler while preserving meaning."
	case KindRewriteAs:
		if req.Arg == "" {
			return "", fmt.Errorf("%w: rewriteas needs a target style", ErrUnknownKind)
		}
		instruction = fmt.Sprintf("Rewrite the following text in the style of %s.", req.Arg)
	case KindFactCheck:
		instruction = "Correct any factual errors in the following text. Change nothing else."
	case KindCustom:
		if req.Prompt == "" {
			return "", fmt.Errorf("%w: custom transform needs a prompt", ErrUnknownKind)
		}
		instruction = req.Prompt
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, req.Kind)
	}

	return instruction + "\n\n" + req.Text, nil
}
