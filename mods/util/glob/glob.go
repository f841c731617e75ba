package glob

// Match returns true when string matches pattern. Returns an error when the
// pattern is invalid.
func Match(pattern, str string) (matched bool, err error) {
	return wildcardMatch([]rune(pattern), []rune(str))
}

// IsGlob returns true when the pattern contains any wildcard character.
func IsGlob(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch pattern[i] {
		case '*', '?':
			return true
		}
	}
	return false
}

func wildcardMatch(pattern, str []rune) (bool, error) {
	for len(pattern) > 0 {
		switch pattern[0] {
		case '?':
			if len(str) == 0 {
				return false, nil
			}
		case '*':
			for len(pattern) > 0 && pattern[0] == '*' {
				pattern = pattern[1:]
			}
			if len(pattern) == 0 {
				return true, nil
			}
			for i := 0; i <= len(str); i++ {
				if ok, err := wildcardMatch(pattern, str[i:]); ok || err != nil {
					return ok, err
				}
			}
			return false, nil
		default:
			if len(str) == 0 || str[0] != pattern[0] {
				return false, nil
			}
		}
		pattern = pattern[1:]
		str = str[1:]
	}
	return len(str) == 0, nil
}
