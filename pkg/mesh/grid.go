package mesh

// Grid2D returns an nx x ny structured mesh of quadrilaterals (arity 4) over
// (nx+1)*(ny+1) nodes. Node (i, j) has id j*(nx+1)+i+1; elements are numbered
// row by row with counter-clockwise corners.
func Grid2D(nx, ny int) *Mesh {
	conn := make([]int, 0, nx*ny*4)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			n0 := j*(nx+1) + i + 1
			conn = append(conn, n0, n0+1, n0+nx+2, n0+nx+1)
		}
	}
	return New(conn, 4, (nx+1)*(ny+1))
}

// Grid3D returns an nx x ny x nz structured mesh of hexahedra (arity 8) over
// (nx+1)*(ny+1)*(nz+1) nodes. Node (i, j, k) has id
// (k*(ny+1)+j)*(nx+1)+i+1.
func Grid3D(nx, ny, nz int) *Mesh {
	id := func(i, j, k int) int { return (k*(ny+1)+j)*(nx+1) + i + 1 }
	conn := make([]int, 0, nx*ny*nz*8)
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				conn = append(conn,
					id(i, j, k), id(i+1, j, k), id(i+1, j+1, k), id(i, j+1, k),
					id(i, j, k+1), id(i+1, j, k+1), id(i+1, j+1, k+1), id(i, j+1, k+1),
				)
			}
		}
	}
	return New(conn, 8, (nx+1)*(ny+1)*(nz+1))
}
