// Copyright 2016 The Gini Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dimacs

import "github.com/go-air/cnftools/z"

// Type CnfVis provides a visitor interface to reading dimacs files.
//
// Anything implementing CnfVis can read a dimacs file.
type CnfVis interface {

	// Init is called on a problem line defining number of variables and
	// number of clauses.  If this is not given and strict enforcement
	// of their presence is lacking, then this is called with some defaults.
	Init(v, c int)

	// Add adds a literal; z.LitNull ends the current clause.
	Add(m z.Lit)

	// Called at end of file.
	Eof()
}

