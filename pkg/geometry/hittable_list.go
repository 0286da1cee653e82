package geometry

import "github.com/df07/go-pathtracer/pkg/core"

// HittableList is an ordered collection of hittables that reports the nearest hit
type HittableList struct {
	Objects []core.Hittable
}

// NewHittableList creates a list holding the given objects in order
func NewHittableList(objects ...core.Hittable) *HittableList {
	return &HittableList{Objects: objects}
}

// Add appends an object to the list
func (l *HittableList) Add(object core.Hittable) {
	l.Objects = append(l.Objects, object)
}

// Clear removes every object
func (l *HittableList) Clear() {
	l.Objects = nil
}

// Len returns the number of objects
func (l *HittableList) Len() int {
	return len(l.Objects)
}

// Hit returns the nearest hit among all objects.
// On an exact tie in t, the object added later wins.
func (l *HittableList) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	var closestHit *core.HitRecord
	closestSoFar := tMax

	for _, object := range l.Objects {
		// the bound is inclusive, so a later object at the same t replaces the current hit
		if hit, isHit := object.Hit(ray, tMin, closestSoFar); isHit && hit.T <= closestSoFar {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
