package geo

// ukCities maps lowercase city names to coordinates for major UK cities, so
// common inputs resolve without a network round trip.
var ukCities = map[string]Location{
	// England
	"london":         {Latitude: 51.5074, Longitude: -0.1278, Name: "London", Region: "Greater London"},
	"manchester":     {Latitude: 53.4808, Longitude: -2.2426, Name: "Manchester", Region: "North West"},
	"birmingham":     {Latitude: 52.4862, Longitude: -1.8904, Name: "Birmingham", Region: "West Midlands"},
	"leeds":          {Latitude: 53.8008, Longitude: -1.5491, Name: "Leeds", Region: "Yorkshire"},
	"liverpool":      {Latitude: 53.4084, Longitude: -2.9916, Name: "Liverpool", Region: "North West"},
	"newcastle":      {Latitude: 54.9783, Longitude: -1.6178, Name: "Newcastle", Region: "North East"},
	"sheffield":      {Latitude: 53.3811, Longitude: -1.4701, Name: "Sheffield", Region: "Yorkshire"},
	"bristol":        {Latitude: 51.4545, Longitude: -2.5879, Name: "Bristol", Region: "South West"},
	"nottingham":     {Latitude: 52.9548, Longitude: -1.1581, Name: "Nottingham", Region: "East Midlands"},
	"leicester":      {Latitude: 52.6369, Longitude: -1.1398, Name: "Leicester", Region: "East Midlands"},
	"southampton":    {Latitude: 50.9097, Longitude: -1.4044, Name: "Southampton", Region: "South East"},
	"portsmouth":     {Latitude: 50.8198, Longitude: -1.0880, Name: "Portsmouth", Region: "South East"},
	"brighton":       {Latitude: 50.8225, Longitude: -0.1372, Name: "Brighton", Region: "South East"},
	"oxford":         {Latitude: 51.7520, Longitude: -1.2577, Name: "Oxford", Region: "South East"},
	"cambridge":      {Latitude: 52.2053, Longitude: 0.1218, Name: "Cambridge", Region: "East"},
	"norwich":        {Latitude: 52.6309, Longitude: 1.2974, Name: "Norwich", Region: "East"},
	"york":           {Latitude: 53.9591, Longitude: -1.0815, Name: "York", Region: "Yorkshire"},
	"bath":           {Latitude: 51.3811, Longitude: -2.3590, Name: "Bath", Region: "South West"},
	"exeter":         {Latitude: 50.7184, Longitude: -3.5339, Name: "Exeter", Region: "South West"},
	"plymouth":       {Latitude: 50.3755, Longitude: -4.1427, Name: "Plymouth", Region: "South West"},
	"coventry":       {Latitude: 52.4068, Longitude: -1.5197, Name: "Coventry", Region: "West Midlands"},
	"reading":        {Latitude: 51.4543, Longitude: -0.9781, Name: "Reading", Region: "South East"},
	"milton keynes":  {Latitude: 52.0406, Longitude: -0.7594, Name: "Milton Keynes", Region: "South East"},
	"luton":          {Latitude: 51.8787, Longitude: -0.4200, Name: "Luton", Region: "East"},
	"peterborough":   {Latitude: 52.5695, Longitude: -0.2405, Name: "Peterborough", Region: "East"},
	"hull":           {Latitude: 53.7676, Longitude: -0.3274, Name: "Hull", Region: "Yorkshire"},
	"stoke":          {Latitude: 53.0027, Longitude: -2.1794, Name: "Stoke-on-Trent", Region: "West Midlands"},
	"stoke-on-trent": {Latitude: 53.0027, Longitude: -2.1794, Name: "Stoke-on-Trent", Region: "West Midlands"},
	"derby":          {Latitude: 52.9225, Longitude: -1.4746, Name: "Derby", Region: "East Midlands"},
	"wolverhampton":  {Latitude: 52.5870, Longitude: -2.1288, Name: "Wolverhampton", Region: "West Midlands"},
	"sunderland":     {Latitude: 54.9069, Longitude: -1.3838, Name: "Sunderland", Region: "North East"},
	"middlesbrough":  {Latitude: 54.5742, Longitude: -1.2350, Name: "Middlesbrough", Region: "North East"},

	// Scotland
	"edinburgh": {Latitude: 55.9533, Longitude: -3.1883, Name: "Edinburgh", Region: "Scotland"},
	"glasgow":   {Latitude: 55.8642, Longitude: -4.2518, Name: "Glasgow", Region: "Scotland"},
	"aberdeen":  {Latitude: 57.1497, Longitude: -2.0943, Name: "Aberdeen", Region: "Scotland"},
	"dundee":    {Latitude: 56.4620, Longitude: -2.9707, Name: "Dundee", Region: "Scotland"},
	"inverness": {Latitude: 57.4778, Longitude: -4.2247, Name: "Inverness", Region: "Scotland"},

	// Wales
	"cardiff": {Latitude: 51.4816, Longitude: -3.1791, Name: "Cardiff", Region: "Wales"},
	"swansea": {Latitude: 51.6214, Longitude: -3.9436, Name: "Swansea", Region: "Wales"},
	"newport": {Latitude: 51.5842, Longitude: -2.9977, Name: "Newport", Region: "Wales"},

	// Northern Ireland
	"belfast":     {Latitude: 54.5973, Longitude: -5.9301, Name: "Belfast", Region: "Northern Ireland"},
	"derry":       {Latitude: 54.9966, Longitude: -7.3086, Name: "Derry", Region: "Northern Ireland"},
	"londonderry": {Latitude: 54.9966, Longitude: -7.3086, Name: "Londonderry", Region: "Northern Ireland"},
}
