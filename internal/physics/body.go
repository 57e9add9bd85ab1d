package physics

import (
	"fmt"

	"github.com/annel0/terrain2d/internal/geom"
	"github.com/annel0/terrain2d/internal/vec"
	"github.com/google/uuid"
)

// BodyHandle непрозрачный идентификатор физического тела
type BodyHandle string

// Body статическое физическое тело, построенное из полигона ландшафта.
// Position — площадной центроид полигона, Vertices заданы относительно него.
type Body struct {
	Handle   BodyHandle
	Position vec.Vec2Float
	Vertices []vec.Vec2Float
	Static   bool
}

// Manager интерфейс физического движка-коллаборатора.
// Ядро не делает предположений о форме тел за пределами того, что само
// строит; owner идентифицирует владельца для последующей очистки.
type Manager interface {
	RegisterBody(body *Body, owner string) error
	RemoveBody(handle BodyHandle) error
}

// NewStaticBody строит статическое тело из полигона.
// Центр тела — центроид по формуле шнуровки (не простое среднее вершин),
// вершины переводятся в локальные координаты относительно центра.
// Для вырожденного полигона возвращается ошибка.
func NewStaticBody(poly geom.Polygon) (*Body, error) {
	if !poly.Valid() {
		return nil, fmt.Errorf("полигон непригоден для тела: %d вершин", len(poly))
	}

	center := poly.Centroid()
	verts := make([]vec.Vec2Float, len(poly))
	for i, p := range poly {
		verts[i] = p.Sub(center)
	}

	return &Body{
		Handle:   BodyHandle(uuid.NewString()),
		Position: center,
		Vertices: verts,
		Static:   true,
	}, nil
}
