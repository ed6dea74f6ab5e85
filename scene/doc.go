// Package scene loads YAML scene descriptions into a drawing tree.
//
// A scene lists items (groups, basic shapes, paths, images and text) with
// their style, transform, clip, mask and filter. Parse builds a
// drawing.Drawing from one; Scene.Render updates and renders it.
//
//	s, err := scene.LoadFile("poster.yaml")
//	if err != nil {
//		return err
//	}
//	img := s.Render()
package scene
