package dispatcher

import (
	"multivator/src/config"
	"multivator/src/elev"
	"multivator/src/utils"
)

// penalty is the cost of sending the car to floor.
//   - a car already selected in this pass costs config.SelectedPenalty
//   - otherwise the cost is the number of floors to travel
func penalty(e *elev.ElevState, floor int) int {
	if e.Selected {
		return config.SelectedPenalty
	}
	return utils.Abs(e.Floor - floor)
}
