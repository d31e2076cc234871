// Package openmfd compiles a hierarchical, parametric description of a
// 3D microfluidic device into a layer-by-layer photolithographic print
// job for a DLP/mask-based resin printer.
//
// A caller composes components out of primitive solids (cubes,
// cylinders, spheres, rounded cubes, swept polychannels, triply
// periodic minimal surfaces, imported meshes; package shape), labels
// regions, declares ports at component boundaries (package component),
// and requests automatic or guided routing of channels between ports
// (package router). Compile turns the resulting device tree into (a)
// per-layer raster masks, (b) a JSON print program listing per-layer
// position moves, exposure settings, and named setting groups
// (package compiler, schema in spec §6), and (c) a deduplicated image
// store (package imgstore).
//
// # Quick start
//
//	dev := component.NewDevice("chip", manifold.Vec3{}, 100)
//	dev.AddLabel("bulk", palette.New(128, 128, 128, 255))
//	dev.AddBulk("body", shape.NewCube(lib, manifold.Vec3{X: 2560, Y: 1600, Z: 100}), "bulk")
//	result, err := openmfd.Compile(dev.Component, lib, cfg)
//
// # Architecture
//
//   - units, palette: integer pixel/layer space, RGBA lookup.
//   - manifold, shape: wraps an external manifold CSG library, tracks
//     keepout AABBs under transforms.
//   - polychannel: default inheritance, arc insertion, Bézier expansion,
//     pairwise hulling of sparse cross-section sequences.
//   - component: the hierarchical device tree — ports, labels,
//     void/bulk shapes, regional settings, transforms.
//   - rtree, router: keepout index and A* pathfinder with a persistent
//     per-component route cache.
//   - slicer: z-plane polygon slicing, orientation-aware rasterisation,
//     RLE packing.
//   - imaging: morphology and mask arithmetic; edge/roof/membrane/
//     regional-exposure synthesis.
//   - compiler: device-tree embedding, layer grouping, exposure-sum
//     combination, named-settings deduplication, run minimisation.
//   - settings: typed position/exposure/membrane/dose settings objects.
//   - imgstore: content-addressed, write-once image store.
package openmfd
