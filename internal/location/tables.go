package location

type point struct {
	lat, lng float64
}

type referenceCity struct {
	point
	city      string
	state     string
	stateCode string
}

var defaultPoint = point{lat: 38.9072, lng: -77.0369}

// referenceCities son los centroides usados para atribuir coordenadas a una ciudad.
var referenceCities = []referenceCity{
	{point{38.9072, -77.0369}, "Washington", "District of Columbia", "DC"},
	{point{40.7128, -74.0060}, "New York", "New York", "NY"},
	{point{34.0522, -118.2437}, "Los Angeles", "California", "CA"},
	{point{41.8781, -87.6298}, "Chicago", "Illinois", "IL"},
	{point{29.7604, -95.3698}, "Houston", "Texas", "TX"},
	{point{33.4484, -112.0740}, "Phoenix", "Arizona", "AZ"},
	{point{39.7392, -104.9903}, "Denver", "Colorado", "CO"},
	{point{47.6062, -122.3321}, "Seattle", "Washington", "WA"},
	{point{25.7617, -80.1918}, "Miami", "Florida", "FL"},
	{point{42.3601, -71.0589}, "Boston", "Massachusetts", "MA"},
}

type stateCentroid struct {
	point
	code string
}

// stateCentroids alimenta el filtro por coordenadas de officials. El orden
// importa en empates: gana el primero.
var stateCentroids = []stateCentroid{
	{point{38.9, -77.0}, "DC"},
	{point{36.7, -119.7}, "CA"},
	{point{31.9, -99.9}, "TX"},
	{point{27.8, -81.7}, "FL"},
	{point{42.2, -74.9}, "NY"},
	{point{40.3, -76.9}, "PA"},
	{point{40.3, -89.0}, "IL"},
	{point{40.4, -82.8}, "OH"},
	{point{33.0, -83.6}, "GA"},
	{point{35.6, -79.8}, "NC"},
	{point{43.3, -84.5}, "MI"},
	{point{40.3, -74.5}, "NJ"},
	{point{37.8, -78.2}, "VA"},
	{point{47.4, -121.5}, "WA"},
}

// cityCoordinates se indexa por "Ciudad-Estado" con el nombre completo o el codigo.
var cityCoordinates = map[string]point{
	"Washington-DC":    {38.9072, -77.0369},
	"New York-NY":      {40.7128, -74.0060},
	"Los Angeles-CA":   {34.0522, -118.2437},
	"Chicago-IL":       {41.8781, -87.6298},
	"Houston-TX":       {29.7604, -95.3698},
	"Phoenix-AZ":       {33.4484, -112.0740},
	"Denver-CO":        {39.7392, -104.9903},
	"Seattle-WA":       {47.6062, -122.3321},
	"Miami-FL":         {25.7617, -80.1918},
	"Boston-MA":        {42.3601, -71.0589},
	"Atlanta-GA":       {33.7490, -84.3880},
	"Dallas-TX":        {32.7767, -96.7970},
	"San Francisco-CA": {37.7749, -122.4194},
	"Philadelphia-PA":  {39.9526, -75.1652},
	"San Diego-CA":     {32.7157, -117.1611},
}

type capital struct {
	point
	city string
}

var stateCapitals = map[string]capital{
	"AL": {point{32.3668, -86.2999}, "Montgomery"},
	"AK": {point{58.2014, -134.4197}, "Juneau"},
	"AZ": {point{33.4484, -112.0740}, "Phoenix"},
	"AR": {point{34.7465, -92.2896}, "Little Rock"},
	"CA": {point{38.5767, -121.4934}, "Sacramento"},
	"CO": {point{39.7392, -104.9903}, "Denver"},
	"CT": {point{41.7658, -72.6734}, "Hartford"},
	"DE": {point{39.1612, -75.5264}, "Dover"},
	"FL": {point{30.4518, -84.27277}, "Tallahassee"},
	"GA": {point{33.7490, -84.3880}, "Atlanta"},
	"HI": {point{21.30895, -157.826182}, "Honolulu"},
	"ID": {point{43.6150, -116.2023}, "Boise"},
	"IL": {point{39.78325, -89.650373}, "Springfield"},
	"IN": {point{39.790942, -86.147685}, "Indianapolis"},
	"IA": {point{41.590939, -93.620866}, "Des Moines"},
	"KS": {point{39.04, -95.69}, "Topeka"},
	"KY": {point{38.194, -84.86}, "Frankfort"},
	"LA": {point{30.45809, -91.140229}, "Baton Rouge"},
	"ME": {point{44.323535, -69.765261}, "Augusta"},
	"MD": {point{38.972945, -76.501157}, "Annapolis"},
	"MA": {point{42.2352, -71.0275}, "Boston"},
	"MI": {point{42.354558, -84.955255}, "Lansing"},
	"MN": {point{44.95, -93.094}, "St. Paul"},
	"MS": {point{32.320, -90.207}, "Jackson"},
	"MO": {point{38.572954, -92.189283}, "Jefferson City"},
	"MT": {point{46.595805, -112.027031}, "Helena"},
	"NE": {point{40.809868, -96.675345}, "Lincoln"},
	"NV": {point{39.161921, -119.767409}, "Carson City"},
	"NH": {point{43.220093, -71.549896}, "Concord"},
	"NJ": {point{40.221741, -74.756138}, "Trenton"},
	"NM": {point{35.667231, -105.964575}, "Santa Fe"},
	"NY": {point{42.659829, -73.781339}, "Albany"},
	"NC": {point{35.771, -78.638}, "Raleigh"},
	"ND": {point{46.813343, -100.779004}, "Bismarck"},
	"OH": {point{39.961176, -82.998794}, "Columbus"},
	"OK": {point{35.482309, -97.534994}, "Oklahoma City"},
	"OR": {point{44.931109, -123.029159}, "Salem"},
	"PA": {point{40.269789, -76.875613}, "Harrisburg"},
	"RI": {point{41.82355, -71.422132}, "Providence"},
	"SC": {point{34.000, -81.035}, "Columbia"},
	"SD": {point{44.367966, -100.336378}, "Pierre"},
	"TN": {point{36.165, -86.784}, "Nashville"},
	"TX": {point{30.266667, -97.75}, "Austin"},
	"UT": {point{40.777477, -111.888237}, "Salt Lake City"},
	"VT": {point{44.26639, -72.580536}, "Montpelier"},
	"VA": {point{37.54, -77.46}, "Richmond"},
	"WA": {point{47.042418, -122.893077}, "Olympia"},
	"WV": {point{38.349497, -81.633294}, "Charleston"},
	"WI": {point{43.074722, -89.384444}, "Madison"},
	"WY": {point{41.145548, -104.802042}, "Cheyenne"},
	"DC": {point{38.9072, -77.0369}, "Washington"},
}

var stateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New Hampshire", "NJ": "New Jersey", "NM": "New Mexico", "NY": "New York",
	"NC": "North Carolina", "ND": "North Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode Island", "SC": "South Carolina",
	"SD": "South Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West Virginia",
	"WI": "Wisconsin", "WY": "Wyoming", "DC": "District of Columbia",
}

// zipDirect tiene prioridad sobre los rangos.
var zipDirect = map[string]string{
	"27713": "NC", // Durham
	"35801": "AL", // Huntsville
	"80301": "CO", // Boulder
	"73301": "TX", // Austin (IRS)
	"48104": "MI", // Ann Arbor
	"20500": "DC",
	"10001": "NY",
	"90210": "CA",
	"60601": "IL",
	"99501": "AK",
}

type zipRange struct {
	low, high int
	state     string
}

// zipRanges siguen los prefijos de tres digitos de USPS. Sin solapamientos.
var zipRanges = []zipRange{
	{1000, 2799, "MA"},
	{2800, 2999, "RI"},
	{3000, 3899, "NH"},
	{3900, 4999, "ME"},
	{5000, 5499, "VT"},
	{5500, 5599, "MA"},
	{5600, 5999, "VT"},
	{6000, 6999, "CT"},
	{7000, 8999, "NJ"},
	{10000, 14999, "NY"},
	{15000, 19699, "PA"},
	{19700, 19999, "DE"},
	{20000, 20099, "DC"},
	{20100, 20199, "VA"},
	{20200, 20599, "DC"},
	{20600, 21999, "MD"},
	{22000, 24699, "VA"},
	{24700, 26899, "WV"},
	{27000, 28999, "NC"},
	{29000, 29999, "SC"},
	{30000, 31999, "GA"},
	{32000, 34999, "FL"},
	{35000, 36999, "AL"},
	{37000, 38599, "TN"},
	{38600, 39799, "MS"},
	{39800, 39999, "GA"},
	{40000, 42799, "KY"},
	{43000, 45999, "OH"},
	{46000, 47999, "IN"},
	{48000, 49999, "MI"},
	{50000, 52899, "IA"},
	{53000, 54999, "WI"},
	{55000, 56799, "MN"},
	{56900, 56999, "DC"},
	{57000, 57799, "SD"},
	{58000, 58899, "ND"},
	{59000, 59999, "MT"},
	{60000, 62999, "IL"},
	{63000, 65899, "MO"},
	{66000, 67999, "KS"},
	{68000, 69399, "NE"},
	{70000, 71499, "LA"},
	{71600, 72999, "AR"},
	{73000, 74999, "OK"},
	{75000, 79999, "TX"},
	{80000, 81699, "CO"},
	{82000, 83199, "WY"},
	{83200, 83899, "ID"},
	{84000, 84799, "UT"},
	{85000, 86599, "AZ"},
	{87000, 88499, "NM"},
	{88500, 88599, "TX"},
	{88900, 89899, "NV"},
	{90000, 96199, "CA"},
	{96700, 96899, "HI"},
	{97000, 97999, "OR"},
	{98000, 99499, "WA"},
	{99500, 99999, "AK"},
}
