// Package forge mints validly signed tokens once a token's secret is known.
//
// Forging uses jwt.Sign, the same path legitimate issuers use: the captured
// header only selects the algorithm. Operator input that cannot be used is
// reported as a *ValidationError (errors.Is(err, ErrValidation)) carrying
// the offending field and the parser's message.
//
//	token, err := forge.ForgeJSON(key, target.HeaderSegment(), `{"username":"alice","admin":true}`)
package forge
