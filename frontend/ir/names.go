package ir

var assumedTyNames = map[AssumedTy]string{
	AssumedBox:        "Box",
	AssumedVec:        "Vec",
	AssumedOption:     "Option",
	AssumedRange:      "Range",
	AssumedPtrUnique:  "PtrUnique",
	AssumedPtrNonNull: "PtrNonNull",
	AssumedArray:      "Array",
	AssumedSlice:      "Slice",
	AssumedStr:        "Str",
}

var assumedTyByName = invert(assumedTyNames)

var integerTyByName = invert(integerTyNames)

func (a AssumedTy) String() string {
	if name, ok := assumedTyNames[a]; ok {
		return name
	}
	return "invalid"
}

// ParseAssumedTy is the inverse of AssumedTy.String
func ParseAssumedTy(name string) (AssumedTy, bool) {
	a, ok := assumedTyByName[name]
	return a, ok
}

// ParseIntegerTy is the inverse of IntegerTy.String
func ParseIntegerTy(name string) (IntegerTy, bool) {
	t, ok := integerTyByName[name]
	return t, ok
}

func invert[K, V comparable](m map[K]V) map[V]K {
	inverted := make(map[V]K, len(m))
	for k, v := range m {
		inverted[v] = k
	}
	return inverted
}
