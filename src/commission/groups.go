package commission

import (
	"sort"
	"strings"

	"sextant/src/frame"
	"sextant/src/models"
)

// GroupMap assigns a distinct commission model to each
// (sectype, exchange, currency) group in the instrument universe. There is no
// implicit default: every group present in the universe must have an entry.
type GroupMap map[models.SecGroup]Commission

// Validate fails fast if any group implied by the universe has no commission
// model.
func (m GroupMap) Validate(securities map[string]*models.SecurityRecord) error {
	missing := make(map[models.SecGroup]bool)
	for _, security := range securities {
		group := models.GroupOf(security)
		if _, found := m[group]; !found {
			missing[group] = true
		}
	}

	if len(missing) > 0 {
		var labels []string
		for group := range missing {
			labels = append(labels, group.String())
		}
		sort.Strings(labels)
		return models.NewParameterErrorf(
			"expected a commission model for each combination of (sectype, exchange, currency) but none is defined for %s",
			strings.Join(labels, ", "))
	}

	return nil
}

// Commissions dispatches each instrument column to its group's commission
// model and stitches the results back together. Group classification is
// time-invariant, so dispatch is per column, resolved once.
func (m GroupMap) Commissions(securities map[string]*models.SecurityRecord, contractValues, turnover, nlvs *frame.Frame) (*frame.Frame, error) {
	if err := m.Validate(securities); err != nil {
		return nil, err
	}

	out := frame.NewFrame(turnover.Index(), turnover.Columns())

	byGroup := make(map[models.SecGroup][]string)
	for _, sid := range turnover.Columns() {
		security, found := securities[sid]
		if !found {
			return nil, models.NewParameterErrorf("no security record for %s", sid)
		}
		group := models.GroupOf(security)
		byGroup[group] = append(byGroup[group], sid)
	}

	for group, sids := range byGroup {
		groupCommissions, err := m[group].Commissions(contractValues, turnover, nlvs)
		if err != nil {
			return nil, err
		}

		for _, sid := range sids {
			vals := make([]float64, len(groupCommissions.Column(sid)))
			copy(vals, groupCommissions.Column(sid))
			if err := out.SetColumn(sid, vals); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
