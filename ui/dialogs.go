package ui

import (
	"github.com/rivo/tview"
)

const helpText = `Move the cursor with hjkl or the arrow keys.
Enter on one of your pieces selects it and marks
where it can go. Enter on a marked square plays.
A multi-jump is played as one move.

u  take back your last move
r  start a new game
f  show only the board
q  back to the menu`

// ShowConfirm asks a yes/no question on a page named name. onYes runs after
// the dialog closes.
func ShowConfirm(pages *tview.Pages, name, text string, onYes func()) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"Yes", "No"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			pages.RemovePage(name)
			if buttonLabel == "Yes" && onYes != nil {
				onYes()
			}
		})
	styleModal(modal)
	pages.AddPage(name, modal, true, true)
}

// ShowMessage shows text with a single OK button.
func ShowMessage(pages *tview.Pages, name, text string) {
	modal := tview.NewModal().
		SetText(text).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			pages.RemovePage(name)
		})
	styleModal(modal)
	pages.AddPage(name, modal, true, true)
}

// ShowHelp lists the game keys.
func ShowHelp(pages *tview.Pages) {
	ShowMessage(pages, "help", helpText)
}

func styleModal(modal *tview.Modal) {
	modal.SetBackgroundColor(MenuColors.CardBG)
	modal.SetTextColor(MenuColors.Label)
	modal.SetButtonBackgroundColor(MenuColors.ButtonFocus)
	modal.SetButtonTextColor(MenuColors.ButtonText)
	modal.SetBorderColor(MenuColors.BorderFocus)
}
