// Package fcmeans implements batch Fuzzy C-Means (FCM) clustering over
// dense numeric data.
//
// Every point receives a soft membership in each of k clusters. Starting
// from randomly drawn (or caller supplied) centers, a run alternates two
// steps for a fixed number of iterations:
//
//   - membership: u[i,j] = 1 / Σ_l (d(x_i,c_j) / d(x_i,c_l))^(1/(q-1)),
//     where d is the squared Euclidean distance and q > 1 the fuzzifier
//   - update: c_j = Σ_i u[i,j]^q · x_i / Σ_i u[i,j]^q
//
// After the last iteration the memberships are recomputed against the final
// centers and every point is assigned the label of its nearest center.
//
// # Quick Start
//
//	c, err := fcmeans.New(
//	    fcmeans.WithClusters(3),
//	    fcmeans.WithIterations(50),
//	    fcmeans.WithSeed(42),
//	)
//	if err != nil {
//	    return err
//	}
//
//	res, err := c.Fit(ctx, data) // data is an m×d *mat.Dense
//	if err != nil {
//	    return err
//	}
//
//	fmt.Println(res.Labels)
//	labeled, _ := res.Labeled(data) // data plus a label column
//
// # Determinism
//
// Given the same seed (WithSeed) or the same initial centers
// (WithInitialCenters), a run is fully deterministic. The membership and
// update passes are parallelized across WithWorkers goroutines; each row or
// center is computed independently and reduced in a fixed order, so the
// result does not depend on the worker count.
//
// # Degenerate Cases
//
// A point that coincides with one or more centers belongs to them in equal
// parts and to no other center. A center whose total weight underflows to
// zero keeps its previous position.
//
// # Observability
//
// Runs are traced through a structured Logger (WithLogger) and a
// MetricsCollector (WithMetricsCollector). Both default to no-ops.
package fcmeans
