/*
calculate-rmsd computes the RMSD between two molecules read from XYZ files.
The atoms of both files are paired by their order, so both files must list
the same number of atoms in the same order.

An XYZ file may either be plain text or compressed using the Lempel-Ziv coding
(i.e., gzip). If the file is gzipped, it must end with a '.gz' extension.

Files ending in '.pdb' or '.ent' are read as PDB files instead, using every
ATOM and HETATM record of the first model. The --format flag overrides this.

Usage:

	calculate-rmsd [flags] structure_a.xyz structure_b.xyz

Both structures are first centered on their centroids. Three values are then
printed: the RMSD of the centered coordinates ("Normal"), the RMSD after the
first structure has been optimally rotated onto the second ("Kabsch"), and the
RMSD after a further search for the translation that minimizes the Kabsch RMSD
("Fitted").

With --output, nothing is computed beyond the rotation. Instead, the first
structure is printed in XYZ format after it has been centered, rotated onto
the frame of the second structure and moved to the centroid of the second
structure.

# Details

The rotation is computed with the Kabsch algorithm, which finds the optimal
rotational matrix minimizing the RMSD between two paired sets of points. The
algorithm is described in great detail here:
http://cnx.org/content/m11608/latest/#MatrixAlignment.

The translation search defaults to a per-axis coordinate descent with a
shrinking step. '--optimizer nelder-mead' uses a Nelder-Mead simplex search
over the same objective instead.

# Exit status

0 on success, 1 on I/O and other failures, 2 on usage errors, 3 when an input
file is malformed and 4 when the two structures cannot be paired (different
or zero numbers of atoms).
*/
package main
