package prompt

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

var roastChoices = []Choice{
	{Label: "Light", Description: "Bright and acidic"},
	{Label: "Medium"},
	{Label: "Dark"},
}

func TestSelectModel_Enter(t *testing.T) {
	t.Parallel()

	m := newSelectModel("Roast level", roastChoices)
	updated, _ := m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	updated, cmd := updated.(selectModel).Update(keyPress("enter"))
	sm := updated.(selectModel)

	if !sm.done || cmd == nil {
		t.Fatal("enter should finish the prompt")
	}
	got := selectResult(sm, roastChoices)
	if got.Cancelled || got.Index != 1 || got.Value != "Medium" {
		t.Errorf("selectResult = %+v, want Medium at 1", got)
	}
}

func TestSelectModel_Cancel(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"esc", "q", "ctrl+c"} {
		m := newSelectModel("Roast level", roastChoices)
		updated, cmd := m.Update(keyPress(key))
		sm := updated.(selectModel)
		if !sm.cancelled || cmd == nil {
			t.Errorf("%s should cancel", key)
		}
		if got := selectResult(sm, roastChoices); !got.Cancelled {
			t.Errorf("%s: selectResult = %+v, want cancelled", key, got)
		}
	}
}

func TestSelectChoice_Empty(t *testing.T) {
	t.Parallel()

	got, err := selectChoice("Nothing", nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Cancelled {
		t.Error("empty choices should report cancelled")
	}
}
