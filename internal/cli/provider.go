package cli

import (
	apperrors "github.com/agbru/triplegen/internal/errors"
	"github.com/agbru/triplegen/internal/ui"
)

// CLIColorProvider lets apperrors print status lines in the current theme.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }
