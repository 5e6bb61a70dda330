package domain

import "fmt"

type Surface string

const (
	SurfaceHome      Surface = "home"
	SurfaceOrderForm Surface = "order"
	SurfaceHistory   Surface = "history"
	SurfaceChat      Surface = "chat"
)

var AllSurfaces = []Surface{SurfaceHome, SurfaceOrderForm, SurfaceHistory, SurfaceChat}

func ParseSurface(raw string) (Surface, error) {
	for _, surface := range AllSurfaces {
		if string(surface) == raw {
			return surface, nil
		}
	}

	return "", fmt.Errorf("unknown surface %q", raw)
}
