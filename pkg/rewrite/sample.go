package rewrite

// Sample is a short snippet exercising both patterns with numeric,
// symbolic and parenthesized right-hand sides.
const Sample = `if abs(x) <= 3 then
  if abs(x) == 4 then return true end
end
y = abs(x) == N
z = abs(a) <= (A+B)
w = abs(foo) == 3.5`
