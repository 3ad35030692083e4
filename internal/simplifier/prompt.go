package simplifier

import (
	"fmt"
	"strings"

	"github.com/gabrielchua/descriptive-theory/internal/models"
)

// BuildSystemPrompt appends the reply-language instruction to the persona. The persona is
// never altered by the language choice.
func BuildSystemPrompt(persona string, language models.Language) string {
	if persona != "" && !strings.HasSuffix(persona, " ") {
		persona += " "
	}
	return persona + fmt.Sprintf("Please reply in %s. ", language)
}
