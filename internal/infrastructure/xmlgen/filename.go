package xmlgen

import (
	"fmt"
	"regexp"

	"offerte/internal/core/apperror"
)

// Action is the transmission intent encoded in the filename.
type Action string

const (
	ActionInsert Action = "INSERIMENTO"
	ActionUpdate Action = "AGGIORNAMENTO"
)

const maxFilenameDescriptionLen = 25

// Strictly alphanumeric: spaces, underscores and accented letters are
// all rejected, since the receiving system splits the filename on "_".
var filenameDescriptionRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Filename builds the transmission filename
// <PIVA>_<AZIONE>_<DESCRIZIONE>.XML.
func Filename(vatNumber string, action Action, description string) (string, error) {
	if vatNumber == "" {
		return "", apperror.NewInvalidInput("vat number is required for the filename")
	}
	if action != ActionInsert && action != ActionUpdate {
		return "", apperror.NewInvalidInput(fmt.Sprintf("unknown action %q", action)).
			WithDetail("allowed", []Action{ActionInsert, ActionUpdate})
	}
	if description == "" {
		return "", apperror.NewInvalidInput("filename description is required")
	}
	if len(description) > maxFilenameDescriptionLen {
		return "", apperror.NewInvalidInput(
			fmt.Sprintf("filename description exceeds %d characters", maxFilenameDescriptionLen))
	}
	if !filenameDescriptionRe.MatchString(description) {
		return "", apperror.NewInvalidInput(
			"filename description must contain only unaccented letters and digits")
	}
	return fmt.Sprintf("%s_%s_%s.XML", vatNumber, action, description), nil
}
