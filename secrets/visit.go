package secrets

// Visitor receives the declaration nodes of a parsed file in source order.
// Returning an error stops the walk.
type Visitor interface {
	VisitClass(class *ClassDecl) error
	VisitAccessor(class *ClassDecl, acc *AccessorDecl) error
	VisitReturn(acc *AccessorDecl, ret *ReturnStmt) error
	VisitObjectLiteral(acc *AccessorDecl, obj *ObjectLiteral) error
}

// Walk traverses a parsed file depth first, calling v for every class, each
// accessor on it, the accessor's return statement, and the returned object
// literal when one exists.
func Walk(file *SourceFile, v Visitor) error {
	for _, class := range file.Classes {
		if err := v.VisitClass(class); err != nil {
			return err
		}
		for _, acc := range class.Accessors {
			if err := v.VisitAccessor(class, acc); err != nil {
				return err
			}
			if acc.Return == nil {
				continue
			}
			if err := v.VisitReturn(acc, acc.Return); err != nil {
				return err
			}
			if acc.Return.Object == nil {
				continue
			}
			if err := v.VisitObjectLiteral(acc, acc.Return.Object); err != nil {
				return err
			}
		}
	}
	return nil
}
