package engine

// updateSelection marks the element whose center is nearest the viewport
// center. Ties go to the lower index.
func (e *Engine[V]) updateSelection() {
	if len(e.window) == 0 {
		e.reverseOrderIndex = -1
		e.drawOrder = e.drawOrder[:0]
		return
	}

	mid := e.scrollY + e.height/2
	best, bestDist := 0, abs(e.window[0].Center()-mid)
	for i := 1; i < len(e.window); i++ {
		if d := abs(e.window[i].Center() - mid); d < bestDist {
			best, bestDist = i, d
		}
	}

	index := e.firstVisible + best
	if index == e.selection && e.window[best].Selected {
		e.reverseOrderIndex = best
	} else {
		for _, el := range e.window {
			el.Selected = false
		}
		e.window[best].Selected = true
		e.reverseOrderIndex = best
		changed := index != e.selection
		e.selection = index
		if changed {
			e.notifySelection()
		}
	}
	e.drawOrder = DrawOrder(len(e.window), e.reverseOrderIndex)
}

// DrawOrder returns the order in which to draw n window positions so that the
// selected position comes last and its neighbours are drawn after elements
// further away on the same side.
func DrawOrder(n, selected int) []int {
	order := make([]int, n)
	for i := range order {
		if i < selected {
			order[i] = i
		} else {
			order[i] = n - 1 - (i - selected)
		}
	}
	return order
}
