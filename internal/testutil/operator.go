package testutil

import (
	"sislog/internal/logi"
)

// Rejection is a selection the service turned down.
type Rejection struct {
	ProductID int64
	Err       error
}

// ScriptedOperator answers BuildLoad prompts from a fixed list of product
// ids and records what happened. Once the script runs out it finishes the
// selection.
type ScriptedOperator struct {
	Choices []int64
	// Err, when set, is returned by ChooseProduct instead of a choice.
	Err error

	Offered     [][]int64
	AcceptedIDs []int64
	Rejections  []Rejection
	Totals      []string
}

// NewScriptedOperator creates an operator that picks choices in order.
func NewScriptedOperator(choices ...int64) *ScriptedOperator {
	return &ScriptedOperator{Choices: choices}
}

func (o *ScriptedOperator) ChooseProduct(session *logi.LoadSession, eligible []*logi.EligibleProduct) (int64, error) {
	ids := make([]int64, len(eligible))
	for i, p := range eligible {
		ids[i] = p.ID
	}
	o.Offered = append(o.Offered, ids)

	if o.Err != nil {
		return 0, o.Err
	}
	if len(o.Choices) == 0 {
		return logi.FinishSelection, nil
	}
	next := o.Choices[0]
	o.Choices = o.Choices[1:]
	return next, nil
}

func (o *ScriptedOperator) Rejected(session *logi.LoadSession, productID int64, err error) {
	o.Rejections = append(o.Rejections, Rejection{ProductID: productID, Err: err})
}

func (o *ScriptedOperator) Accepted(session *logi.LoadSession, product *logi.EligibleProduct) {
	o.AcceptedIDs = append(o.AcceptedIDs, product.ID)
	o.Totals = append(o.Totals, session.Total.String())
}

var _ logi.LoadOperator = (*ScriptedOperator)(nil)
