package domain

import (
	"fmt"
	"math"
)

// Evaluation es el perfil de cuatro dimensiones, cada una en [-1, 1].
// Se usa tanto para la autoevaluacion del usuario como para el perfil ideal de un path.
type Evaluation struct {
	Patience           float64 `json:"patience" yaml:"patience"`                       // -1 necesita feedback rapido, 1 puede esperar
	RejectionTolerance float64 `json:"rejection_tolerance" yaml:"rejection_tolerance"` // -1 evita el rechazo, 1 lo tolera
	BuildVsSell        float64 `json:"build_vs_sell" yaml:"build_vs_sell"`             // -1 vender, 1 construir
	Leverage           float64 `json:"leverage" yaml:"leverage"`                       // -1 escala lineal, 1 alto apalancamiento
}

// Dimension identifica uno de los cuatro ejes de la evaluacion.
type Dimension string

const (
	DimensionPatience           Dimension = "patience"
	DimensionRejectionTolerance Dimension = "rejection_tolerance"
	DimensionBuildVsSell        Dimension = "build_vs_sell"
	DimensionLeverage           Dimension = "leverage"
)

// Dimensions lista los ejes en orden canonico.
var Dimensions = []Dimension{
	DimensionPatience,
	DimensionRejectionTolerance,
	DimensionBuildVsSell,
	DimensionLeverage,
}

// Value devuelve el valor de una dimension.
func (e Evaluation) Value(d Dimension) float64 {
	switch d {
	case DimensionPatience:
		return e.Patience
	case DimensionRejectionTolerance:
		return e.RejectionTolerance
	case DimensionBuildVsSell:
		return e.BuildVsSell
	case DimensionLeverage:
		return e.Leverage
	}
	panic(fmt.Sprintf("unknown dimension %q", d))
}

// Validate verifica que cada dimension sea finita y este dentro de [-1, 1].
func (e Evaluation) Validate() error {
	for _, d := range Dimensions {
		v := e.Value(d)
		if math.IsNaN(v) || math.IsInf(v, 0) || v < -1 || v > 1 {
			return fmt.Errorf("%s out of range: %v", d, v)
		}
	}
	return nil
}
