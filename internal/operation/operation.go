// Package operation defines the fixed set of rewrite operations and the
// instruction each one sends to the model.
package operation

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by Parse for tokens that name no operation.
var ErrUnknown = errors.New("unknown operation")

// Operation selects one of the fixed rewrite instructions.
type Operation string

const (
	Correct    Operation = "correct"
	Shorten    Operation = "shorten"
	Rephrase   Operation = "rephrase"
	Formalize  Operation = "formalize"
	Respectful Operation = "respectful"
	Positive   Operation = "positive"
)

const (
	correctInstruction = "You are an expert technical editor. Correct the grammar and improve the " +
		"clarity of the following text while maintaining a professional, " +
		"software-engineer-friendly tone. Return ONLY the corrected text without " +
		"any explanations, comments, or markdown formatting."

	shortenInstruction = "You are an expert technical editor. Make the following text more succinct " +
		"and to-the-point while correcting any grammar errors. Maintain a warm, human " +
		"touch and keep it professional but conversational - avoid sounding brusque or " +
		"overly mechanical. Preserve the core message and maintain a software-engineer-friendly " +
		"tone. Return ONLY the shortened and corrected text without any explanations, " +
		"comments, or markdown formatting."

	rephraseInstruction = "You are an expert technical editor. Rephrase the following text to improve " +
		"clarity and flow while maintaining the same meaning and tone. Use different " +
		"words and sentence structures but keep the professional, software-engineer-friendly " +
		"style. Return ONLY the rephrased text without any explanations, comments, or " +
		"markdown formatting."

	formalizeInstruction = "You are an expert technical editor. Rewrite the following text in a more formal " +
		"and professional tone suitable for business communication or official documentation. " +
		"Maintain clarity and precision while elevating the language. Remove any casual " +
		"expressions or slang. Return ONLY the formalized text without any explanations, " +
		"comments, or markdown formatting."

	respectfulInstruction = "You are an expert technical editor. Rewrite the following text to be more " +
		"respectful, considerate, and diplomatic. Soften any harsh language while " +
		"maintaining the core message. Use polite phrasing and show empathy. Keep it " +
		"professional and software-engineer-friendly. Return ONLY the respectful version " +
		"without any explanations, comments, or markdown formatting."

	positiveInstruction = "You are an expert technical editor. Rewrite the following text to convey the " +
		"message in a more positive and constructive way, even if the original sentiment " +
		"is negative or critical. Use tactful language that focuses on solutions and " +
		"improvements rather than problems. Maintain professionalism and a software-engineer-friendly " +
		"tone. Return ONLY the positively framed text without any explanations, comments, " +
		"or markdown formatting."
)

// All returns every operation in display order.
func All() []Operation {
	return []Operation{Correct, Shorten, Rephrase, Formalize, Respectful, Positive}
}

// Parse maps a user-supplied token to an Operation. Matching ignores case
// and surrounding whitespace; "formal" is accepted for Formalize.
func Parse(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "correct":
		return Correct, nil
	case "shorten":
		return Shorten, nil
	case "rephrase":
		return Rephrase, nil
	case "formalize", "formal":
		return Formalize, nil
	case "respectful":
		return Respectful, nil
	case "positive":
		return Positive, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, s)
}

// Valid reports whether o is one of the fixed operations.
func (o Operation) Valid() bool {
	return o.Instruction() != ""
}

// Instruction returns the system instruction for o, or "" for an invalid
// operation.
func (o Operation) Instruction() string {
	switch o {
	case Correct:
		return correctInstruction
	case Shorten:
		return shortenInstruction
	case Rephrase:
		return rephraseInstruction
	case Formalize:
		return formalizeInstruction
	case Respectful:
		return respectfulInstruction
	case Positive:
		return positiveInstruction
	default:
		return ""
	}
}

// Title is the human-facing label used in listings.
func (o Operation) Title() string {
	switch o {
	case Correct:
		return "Correct grammar"
	case Shorten:
		return "Make succinct"
	case Rephrase:
		return "Rephrase"
	case Formalize:
		return "Make formal"
	case Respectful:
		return "Make respectful"
	case Positive:
		return "Make positive"
	default:
		return string(o)
	}
}

func (o Operation) String() string { return string(o) }
