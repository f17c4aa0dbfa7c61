/*
Package rmsd computes the Root-Mean-Square Deviation between two paired sets
of 3D coordinates, optionally after superimposing one set onto the other.

The optimal rotation is found with the Kabsch algorithm, described in detail
here: http://cnx.org/content/m11608/latest/

Given two centered sets P and Q (N points each), the cross-covariance matrix
C = (P^T)Q is decomposed as C = VS(W^T). When det(V)det(W) is negative the
last column of V is negated so that the rotation U = V(W^T) is proper. P·U is
then the least-squares superposition of P onto Q.

Rotation alone does not resolve a residual translation when the sets were not
centered consistently. Fit searches for that translation with a greedy
per-axis coordinate descent, and FitNelderMead offers a simplex search over
the same objective.

No exported function modifies the point sets it is given.
*/
package rmsd
